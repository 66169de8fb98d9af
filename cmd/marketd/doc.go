// Package main runs marketd, the HTTP server for the materials marketplace.
//
// It serves the routes documented in package api over the same credential
// and listing snapshots the CLI uses, so a CLI started with --server and one
// working on the local files see the same data.
//
// Behaviour
//
//   - Configuration comes from MATMARKET_* environment variables; the listen
//     address is MATMARKET_HTTP_ADDR (default :8080).
//   - Uploads go to the upload directory or, with
//     MATMARKET_UPLOAD_BACKEND=minio, to a MinIO bucket.
//   - Every request is logged with method, path, status, bytes and duration.
//   - SIGINT and SIGTERM trigger a graceful shutdown.
package main

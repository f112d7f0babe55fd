// Package blobstore abstracts the blob storage backend behind the small
// Store interface the pipeline needs: list, size probe, download, upload
// (overwrite), and delete, with a distinguished ErrNotFound.
//
// AzureStore is the production implementation over Azure Blob Storage;
// Memory backs tests. Asset state is always derived from these primitives
// at call time; nothing in this package caches existence.
package blobstore

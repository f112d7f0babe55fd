package blobstore

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureStore implements Store on top of Azure Blob Storage.
type AzureStore struct {
	client *azblob.Client
}

// NewAzureStore builds a store from an Azure storage connection string.
func NewAzureStore(connectionString string) (*AzureStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("connect blob storage: %w", err)
	}
	return &AzureStore{client: client}, nil
}

// List enumerates every blob name in the container. Azure returns pages in
// lexical order already; the sort keeps the contract independent of the
// backend.
func (s *AzureStore) List(ctx context.Context, container string) ([]string, error) {
	var names []string
	pager := s.client.NewListBlobsFlatPager(container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", container, translateError(err))
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *AzureStore) Size(ctx context.Context, container, name string) (int64, error) {
	blobClient := s.client.ServiceClient().NewContainerClient(container).NewBlobClient(name)
	props, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("size %s/%s: %w", container, name, translateError(err))
	}
	if props.ContentLength == nil {
		return 0, fmt.Errorf("size %s/%s: response missing content length", container, name)
	}
	return *props.ContentLength, nil
}

func (s *AzureStore) Download(ctx context.Context, container, name string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, container, name, nil)
	if err != nil {
		return nil, fmt.Errorf("download %s/%s: %w", container, name, translateError(err))
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s/%s: read body: %w", container, name, err)
	}
	return data, nil
}

func (s *AzureStore) Upload(ctx context.Context, container, name string, data []byte) error {
	if _, err := s.client.UploadBuffer(ctx, container, name, data, nil); err != nil {
		return fmt.Errorf("upload %s/%s: %w", container, name, translateError(err))
	}
	return nil
}

func (s *AzureStore) Delete(ctx context.Context, container, name string) error {
	if _, err := s.client.DeleteBlob(ctx, container, name, nil); err != nil {
		return fmt.Errorf("delete %s/%s: %w", container, name, translateError(err))
	}
	return nil
}

func translateError(err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return ErrNotFound
	}
	return err
}

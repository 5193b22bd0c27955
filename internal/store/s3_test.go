package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"

	appErr "github.com/xxxsen/mauth/internal/pkg/errors"
)

type fakeObjects struct {
	objects map[string][]byte
	getErr  error
	putErr  error
	puts    []*s3.PutObjectInput
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}}
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeObjects()
	s := newS3Store(client, "bucket", "users.json")

	users, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	require.NoError(t, s.SaveAll(ctx, sampleUsers()))
	require.Len(t, client.puts, 1)
	require.Equal(t, "application/json", aws.ToString(client.puts[0].ContentType))

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleUsers(), got)
}

func TestS3Store_Errors(t *testing.T) {
	ctx := context.Background()
	client := newFakeObjects()
	s := newS3Store(client, "bucket", "users.json")

	client.objects["bucket/users.json"] = []byte("not json")
	_, err := s.LoadAll(ctx)
	require.ErrorIs(t, err, appErr.ErrStorage)

	client.getErr = errors.New("network down")
	_, err = s.LoadAll(ctx)
	require.ErrorIs(t, err, appErr.ErrStorage)

	client.putErr = errors.New("access denied")
	err = s.SaveAll(ctx, sampleUsers())
	require.ErrorIs(t, err, appErr.ErrStorage)
}

func TestCreateS3Store_Validation(t *testing.T) {
	_, err := createS3Store(map[string]interface{}{"bucket": "b"})
	require.Error(t, err)
	_, err = createS3Store(nil)
	require.Error(t, err)
}

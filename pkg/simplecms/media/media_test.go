package media_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/media"
)

type mockHeadObject struct {
	mock.Mock
}

func (m *mockHeadObject) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(aws.ToString(params.Bucket), aws.ToString(params.Key))
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func TestMemoryResolver(t *testing.T) {
	ctx := context.Background()
	r := media.NewMemory("img-1")

	ok, err := r.Exists(ctx, "img-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Exists(ctx, "img-2")
	require.NoError(t, err)
	assert.False(t, ok)

	r.Add("img-2")
	r.Remove("img-1")
	ok, _ = r.Exists(ctx, "img-2")
	assert.True(t, ok)
	ok, _ = r.Exists(ctx, "img-1")
	assert.False(t, ok)
}

func TestS3Resolver(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mediaID string
		key     string
		err     error
		exists  bool
		wantErr bool
	}{
		{name: "object present", mediaID: "a.png", key: "media/a.png", exists: true},
		{name: "typed not found", mediaID: "b.png", key: "media/b.png", err: &types.NotFound{}},
		{name: "no such key", mediaID: "c.png", key: "media/c.png", err: &types.NoSuchKey{}},
		{name: "generic not found code", mediaID: "d.png", key: "media/d.png",
			err: &smithy.GenericAPIError{Code: "NotFound", Message: "Not Found"}},
		{name: "access denied surfaces", mediaID: "e.png", key: "media/e.png",
			err: &smithy.GenericAPIError{Code: "AccessDenied"}, wantErr: true},
		{name: "network error surfaces", mediaID: "f.png", key: "media/f.png",
			err: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockHeadObject{}
			if tt.err != nil {
				client.On("HeadObject", "assets", tt.key).Return(nil, tt.err)
			} else {
				client.On("HeadObject", "assets", tt.key).Return(&s3.HeadObjectOutput{}, nil)
			}

			r := media.NewS3WithClient(client, "assets", "media/")
			ok, err := r.Exists(ctx, tt.mediaID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.exists, ok)
			client.AssertExpectations(t)
		})
	}

	t.Run("blank id is not looked up", func(t *testing.T) {
		client := &mockHeadObject{}
		r := media.NewS3WithClient(client, "assets", "")
		ok, err := r.Exists(ctx, " ")
		require.NoError(t, err)
		assert.False(t, ok)
		client.AssertNotCalled(t, "HeadObject", mock.Anything, mock.Anything)
	})
}

func TestKeyLayouts(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		prefix  string
		mediaID string
		key     string
	}{
		{name: "flat without prefix", layout: "flat", mediaID: "a.png", key: "a.png"},
		{name: "flat with prefix", layout: "", prefix: "media/", mediaID: "/a.png", key: "media/a.png"},
		{name: "sharded uuid", layout: "sharded", prefix: "media",
			mediaID: "3f2a9c1e-0000-4000-8000-000000000001", key: "media/objects/3f/2a9c1e000040008000000000000001"},
		{name: "sharded short id falls back to flat", layout: "sharded", mediaID: "ab", key: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := media.ParseLayout(tt.layout, tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.key, layout.Key(tt.mediaID))
		})
	}

	t.Run("unknown layout", func(t *testing.T) {
		_, err := media.ParseLayout("tree", "")
		assert.Error(t, err)
	})

	t.Run("resolver uses layout", func(t *testing.T) {
		client := &mockHeadObject{}
		client.On("HeadObject", "assets", "objects/ab/cdef").Return(&s3.HeadObjectOutput{}, nil)

		r := media.NewS3WithClient(client, "assets", "").WithLayout(media.ShardedLayout{ShardLength: 2})
		ok, err := r.Exists(context.Background(), "abcdef")
		require.NoError(t, err)
		assert.True(t, ok)
		client.AssertExpectations(t)
	})
}

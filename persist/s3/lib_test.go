package s3_test

import (
	"context"
	"testing"

	s3Persist "github.com/jrhy/ptrie/persist/s3"
	"github.com/jrhy/ptrie/persist/s3test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestHappyCase(t *testing.T) {
	t.Parallel()
	c, bucketName, closer := s3test.Client()
	defer closer()

	p := s3Persist.NewPersist(c, bucketName, "")
	err := p.Store(ctx, "foofoo", []byte("here is some stuff"))
	require.NoError(t, err)
	b, err := p.Load(ctx, "foofoo")
	require.NoError(t, err)
	assert.Equal(t, []byte("here is some stuff"), b)
}

func TestPrefix(t *testing.T) {
	t.Parallel()
	c, bucketName, closer := s3test.Client()
	defer closer()

	p1 := s3Persist.NewPersist(c, bucketName, "v1/")
	p2 := s3Persist.NewPersist(c, bucketName, "v2/")
	err := p1.Store(ctx, "node", []byte("one"))
	require.NoError(t, err)
	_, err = p2.Load(ctx, "node")
	require.Error(t, err)
	b, err := p1.Load(ctx, "node")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), b)
}

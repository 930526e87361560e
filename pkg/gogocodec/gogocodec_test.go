package gogocodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/grafana/federator/pkg/federationpb"
)

func TestCodecMarshallAndUnmarshall_gogo_type(t *testing.T) {
	c := NewCodec()
	req1 := &federationpb.TopicRequest{
		ClientId: "org-b-consumer",
		Topic:    "flights",
		Offset:   42,
	}
	data, err := c.Marshal(req1)
	require.NoError(t, err)

	req2 := &federationpb.TopicRequest{}
	err = c.Unmarshal(data, req2)
	require.NoError(t, err)
	assert.Equal(t, req1, req2)
}

func TestCodecMarshallAndUnmarshall_foreign_type(t *testing.T) {
	c := NewCodec()
	msg1 := &emptypb.Empty{}
	data, err := c.Marshal(msg1)
	require.NoError(t, err)

	msg2 := &emptypb.Empty{}
	err = c.Unmarshal(data, msg2)
	require.NoError(t, err)
	assert.True(t, proto.Equal(msg1, msg2))
}

func TestCodecMarshal_unsupported_type(t *testing.T) {
	c := NewCodec()

	_, err := c.Marshal(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported marshal type")
}

func TestCodecUnmarshal_unsupported_type(t *testing.T) {
	c := NewCodec()

	err := c.Unmarshal([]byte{0x01}, struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported unmarshal type")
}

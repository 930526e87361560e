// Package gogocodec provides a grpc codec that understands both gogo-generated
// messages (the federation wire schema) and regular golang protobuf messages
// (grpc health checks and the like).
package gogocodec

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

// Name is the codec name registered with grpc. Overriding the default "proto"
// codec routes every message on the connection through here.
const Name = "proto"

func init() {
	encoding.RegisterCodec(NewCodec())
}

type gogoProtoMessage interface {
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
}

type codec struct{}

// NewCodec returns the combined gogo/golang proto codec.
func NewCodec() encoding.Codec {
	return &codec{}
}

func (*codec) Name() string {
	return Name
}

func (*codec) Marshal(v any) ([]byte, error) {
	switch msg := v.(type) {
	case gogoProtoMessage:
		return msg.Marshal()
	case proto.Message:
		return proto.Marshal(msg)
	case protoadapt.MessageV1:
		return proto.Marshal(protoadapt.MessageV2Of(msg))
	default:
		return nil, fmt.Errorf("unsupported marshal type %T", v)
	}
}

func (*codec) Unmarshal(data []byte, v any) error {
	switch msg := v.(type) {
	case gogoProtoMessage:
		return msg.Unmarshal(data)
	case proto.Message:
		return proto.Unmarshal(data, msg)
	case protoadapt.MessageV1:
		return proto.Unmarshal(data, protoadapt.MessageV2Of(msg))
	default:
		return fmt.Errorf("unsupported unmarshal type %T", v)
	}
}

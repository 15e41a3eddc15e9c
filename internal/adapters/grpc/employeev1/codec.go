package employeev1

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	grpcproto "google.golang.org/grpc/encoding/proto"
	"google.golang.org/grpc/mem"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"
)

// codec は employee.v1 のメッセージを File の記述子に沿った protobuf バイナリで送受信します。
// それ以外のメッセージ (ヘルスチェックなど) は gRPC 既定の proto コーデックへ委譲します。
type codec struct {
	fallback encoding.CodecV2
}

func (c codec) Marshal(v any) (mem.BufferSlice, error) {
	wm, ok := v.(wireMessage)
	if !ok {
		return c.fallbackCodec().Marshal(v)
	}
	m := dynamicpb.NewMessage(messageDescriptor(wm.protoName()))
	wm.toProto(m)
	b, err := proto.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("employeev1: marshal %s: %w", wm.protoName(), err)
	}
	return mem.BufferSlice{mem.SliceBuffer(b)}, nil
}

func (c codec) Unmarshal(data mem.BufferSlice, v any) error {
	wm, ok := v.(wireMessage)
	if !ok {
		return c.fallbackCodec().Unmarshal(data, v)
	}
	m := dynamicpb.NewMessage(messageDescriptor(wm.protoName()))
	if err := proto.Unmarshal(data.Materialize(), m); err != nil {
		return fmt.Errorf("employeev1: unmarshal %s: %w", wm.protoName(), err)
	}
	wm.fromProto(m)
	return nil
}

func (codec) Name() string {
	return grpcproto.Name
}

func (c codec) fallbackCodec() encoding.CodecV2 {
	if c.fallback == nil {
		panic("employeev1: default proto codec is not registered")
	}
	return c.fallback
}

func init() {
	encoding.RegisterCodecV2(codec{fallback: encoding.GetCodecV2(grpcproto.Name)})
}

package core

import (
	"errors"
	"testing"

	com "github.com/mus-format/common-go"
	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/varint"
)

func TestChunkCodecRoundTrip(t *testing.T) {
	chunk := Chunk{
		Id:             42,
		ConversationId: 7,
		DocumentId:     9,
		Seq:            3,
		Contents:       "paging and segmentation",
		Vector:         []float32{0.25, -0.5, 1},
	}

	bs := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, bs)

	got, n, err := ChunkMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if n != len(bs) {
		t.Errorf("Unmarshal() consumed %d bytes, want %d", n, len(bs))
	}
	if got.Contents != chunk.Contents || got.Seq != chunk.Seq || len(got.Vector) != len(chunk.Vector) {
		t.Errorf("Unmarshal() = %+v, want %+v", got, chunk)
	}
}

func TestFloat32SliceCorruptLength(t *testing.T) {
	t.Run("negative length", func(t *testing.T) {
		bs := make([]byte, varint.Int.Size(-5))
		varint.Int.Marshal(-5, bs)

		_, _, err := float32Slice.Unmarshal(bs)
		if !errors.Is(err, com.ErrNegativeLength) {
			t.Errorf("Unmarshal() error = %v, want ErrNegativeLength", err)
		}

		_, err = float32Slice.Skip(bs)
		if !errors.Is(err, com.ErrNegativeLength) {
			t.Errorf("Skip() error = %v, want ErrNegativeLength", err)
		}
	})

	t.Run("length exceeds data", func(t *testing.T) {
		// A claimed element count far beyond the remaining bytes must be
		// rejected before any allocation.
		const huge = 1 << 40
		bs := make([]byte, varint.Int.Size(huge)+1)
		n := varint.Int.Marshal(huge, bs)
		bs[n] = 0

		_, _, err := float32Slice.Unmarshal(bs)
		if !errors.Is(err, mus.ErrTooSmallByteSlice) {
			t.Errorf("Unmarshal() error = %v, want ErrTooSmallByteSlice", err)
		}

		_, err = float32Slice.Skip(bs)
		if !errors.Is(err, mus.ErrTooSmallByteSlice) {
			t.Errorf("Skip() error = %v, want ErrTooSmallByteSlice", err)
		}
	})
}

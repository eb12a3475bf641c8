package database

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/gamesmanone/core/internal/storage"
	"github.com/gamesmanone/core/internal/types"
)

// formatVersion identifies the on-disk record layout (spec §6 "A
// format header carries version and per-position record width").
const formatVersion = 1

// recordWidthBytes is sized for value (<=3 bits) and remoteness
// (<=10 bits) packed into a single uint16 (spec §6).
const recordWidthBytes = 2

const headerLen = 1 /* version */ + 1 /* record width */ + 8 /* xxhash64 checksum */

// Compressor is the opaque "random-access XZ wrapper... available but
// optional" boundary spec §6 describes; zstd is this pack's available
// substitute for XZ.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// NoCompression is the identity Compressor, used when a game's tiers
// are small enough that compression isn't worth the CPU.
type NoCompression struct{}

func (NoCompression) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoCompression) Decompress(data []byte) ([]byte, error) { return data, nil }

// ZstdCompressor wraps klauspost/compress/zstd encoders/decoders
// reused across calls (construction is the expensive part).
type ZstdCompressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstdCompressor builds a reusable zstd-backed Compressor.
func NewZstdCompressor() (*ZstdCompressor, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &ZstdCompressor{enc: enc, dec: dec}, nil
}

func (z *ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return z.enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

func (z *ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return z.dec.DecodeAll(data, nil)
}

// encodeRecords packs records into the fixed-width layout the format
// header describes: value in the top 3 bits, remoteness in the low 10
// (spec §6 "records are value+remoteness encoded into a small number
// of bits").
func encodeRecords(records []types.Record) []byte {
	buf := make([]byte, len(records)*recordWidthBytes)
	for i, rec := range records {
		packed := uint16(rec.Value&0x7)<<10 | uint16(rec.Remoteness&0x3FF)
		binary.LittleEndian.PutUint16(buf[i*2:], packed)
	}
	return buf
}

func decodeRecords(buf []byte) []types.Record {
	n := len(buf) / recordWidthBytes
	out := make([]types.Record, n)
	for i := 0; i < n; i++ {
		packed := binary.LittleEndian.Uint16(buf[i*2:])
		out[i] = types.Record{
			Value:      types.Value(packed >> 10),
			Remoteness: types.Remoteness(packed & 0x3FF),
		}
	}
	return out
}

// Disk is the durable, cross-process backing store, layered directly
// on internal/storage.Store (itself adapted from the teacher's
// internal/storage.Storage Badger wrapper): per-tier files (spec §6)
// become Store keys rather than OS files, a substitution the
// byte-keyed Store makes natural.
type Disk struct {
	store      *storage.Store
	gameName   string
	compressor Compressor
}

// Open opens (creating if absent) the on-disk database rooted at dir
// for one game.
func Open(dir, gameName string, compressor Compressor) (*Disk, error) {
	store, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}
	if compressor == nil {
		compressor = NoCompression{}
	}
	return &Disk{store: store, gameName: gameName, compressor: compressor}, nil
}

// Close closes the underlying store.
func (d *Disk) Close() error {
	return d.store.Close()
}

func tierKey(gameName string, t types.Tier) []byte {
	return []byte(fmt.Sprintf("%s/tier/%d", gameName, int64(t)))
}

// HasTier reports whether t's records are already durable, the check
// the tier solver uses to short-circuit a tier solve unless force is
// set (spec §4.6 "On-disk database: durable across runs; presence
// short-circuits a tier solve if force is not set").
func (d *Disk) HasTier(t types.Tier) bool {
	return d.store.Has(tierKey(d.gameName, t))
}

// FlushTier writes a solved tier's records to durable storage under a
// version+checksum header (spec §6), refusing to overwrite an existing
// tier unless force is set (spec §4.6's "force" option).
func (d *Disk) FlushTier(t types.Tier, records []types.Record, force bool) error {
	if !force && d.HasTier(t) {
		return ErrAlreadyExists
	}
	raw := encodeRecords(records)
	compressed, err := d.compressor.Compress(raw)
	if err != nil {
		return err
	}
	sum := xxhash.Sum64(compressed)

	payload := make([]byte, headerLen+len(compressed))
	payload[0] = formatVersion
	payload[1] = recordWidthBytes
	binary.LittleEndian.PutUint64(payload[2:10], sum)
	copy(payload[headerLen:], compressed)

	return d.store.Set(tierKey(d.gameName, t), payload)
}

// LoadTier reads and decodes t's records, verifying the stored
// checksum before decompression (spec §6's format header, used to
// detect corruption on load).
func (d *Disk) LoadTier(t types.Tier) ([]types.Record, error) {
	var records []types.Record
	err := d.store.Get(tierKey(d.gameName, t), func(payload []byte) error {
		if len(payload) < headerLen {
			return ErrCorrupt
		}
		version := payload[0]
		_ = version // format is currently single-version; reserved for future migrations
		wantSum := binary.LittleEndian.Uint64(payload[2:10])
		compressed := payload[headerLen:]
		if xxhash.Sum64(compressed) != wantSum {
			return ErrCorrupt
		}
		raw, err := d.compressor.Decompress(compressed)
		if err != nil {
			return err
		}
		records = decodeRecords(raw)
		return nil
	})
	if err == storage.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

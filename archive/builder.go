package archive

import (
	"encoding/binary"
	"io"
)

const (
	localHeaderSignature     = 0x04034b50
	directoryHeaderSignature = 0x02014b50
	endRecordSignature       = 0x06054b50

	localHeaderLen     = 30
	directoryHeaderLen = 46
	endRecordLen       = 22

	zipVersion  = 20
	methodStore = 0
)

// Entry 归档内的一个文件，Name在归档内唯一
type Entry struct {
	Name string
	Data []byte
}

// Builder 不压缩(store)的zip构建器，条目按添加顺序写出
//
// 构建器不做任何校验：重复或空文件名属于调用方的编程错误。
// 修改时间固定为0，同样的输入总是得到同样的字节。
type Builder struct {
	entries []Entry
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add 追加一个条目
func (b *Builder) Add(name string, data []byte) *Builder {
	b.entries = append(b.entries, Entry{Name: name, Data: data})
	return b
}

// AddEntries 按顺序追加多个条目
func (b *Builder) AddEntries(entries ...Entry) *Builder {
	b.entries = append(b.entries, entries...)
	return b
}

// Entries 已添加的条目
func (b *Builder) Entries() []Entry {
	return b.entries
}

// DirectoryOffset 中央目录开始的位置，即所有本地头和数据的总长度
func (b *Builder) DirectoryOffset() int {
	n := 0
	for _, e := range b.entries {
		n += localHeaderLen + len(e.Name) + len(e.Data)
	}
	return n
}

// DirectorySize 中央目录的总长度
func (b *Builder) DirectorySize() int {
	n := 0
	for _, e := range b.entries {
		n += directoryHeaderLen + len(e.Name)
	}
	return n
}

// Size 输出的总字节数
func (b *Builder) Size() int {
	return b.DirectoryOffset() + b.DirectorySize() + endRecordLen
}

// Bytes 生成完整的归档: [本地头+数据]×N, [中央目录]×N, [目录结束记录]
func (b *Builder) Bytes() []byte {
	out := make([]byte, 0, b.Size())
	crcs := make([]uint32, len(b.entries))
	offsets := make([]uint32, len(b.entries))
	for i, e := range b.entries {
		crcs[i] = Checksum(e.Data)
		offsets[i] = uint32(len(out))
		out = appendLocalHeader(out, e, crcs[i])
		out = append(out, e.Data...)
	}
	dirOffset := uint32(len(out))
	for i, e := range b.entries {
		out = appendDirectoryHeader(out, e, crcs[i], offsets[i])
	}
	dirSize := uint32(len(out)) - dirOffset
	return appendEndRecord(out, len(b.entries), dirSize, dirOffset)
}

// WriteTo 把归档写入w
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

// Build 一次性构建归档
func Build(entries []Entry) []byte {
	return (&Builder{entries: entries}).Bytes()
}

func appendLocalHeader(out []byte, e Entry, crc uint32) []byte {
	le := binary.LittleEndian
	out = le.AppendUint32(out, localHeaderSignature)
	out = le.AppendUint16(out, zipVersion) // version needed
	out = le.AppendUint16(out, 0)          // flags
	out = le.AppendUint16(out, methodStore)
	out = le.AppendUint16(out, 0) // mod time
	out = le.AppendUint16(out, 0) // mod date
	out = le.AppendUint32(out, crc)
	out = le.AppendUint32(out, uint32(len(e.Data))) // compressed
	out = le.AppendUint32(out, uint32(len(e.Data))) // uncompressed
	out = le.AppendUint16(out, uint16(len(e.Name)))
	out = le.AppendUint16(out, 0) // extra
	return append(out, e.Name...)
}

func appendDirectoryHeader(out []byte, e Entry, crc uint32, offset uint32) []byte {
	le := binary.LittleEndian
	out = le.AppendUint32(out, directoryHeaderSignature)
	out = le.AppendUint16(out, zipVersion) // version made by
	out = le.AppendUint16(out, zipVersion) // version needed
	out = le.AppendUint16(out, 0)          // flags
	out = le.AppendUint16(out, methodStore)
	out = le.AppendUint16(out, 0) // mod time
	out = le.AppendUint16(out, 0) // mod date
	out = le.AppendUint32(out, crc)
	out = le.AppendUint32(out, uint32(len(e.Data)))
	out = le.AppendUint32(out, uint32(len(e.Data)))
	out = le.AppendUint16(out, uint16(len(e.Name)))
	out = le.AppendUint16(out, 0) // extra
	out = le.AppendUint16(out, 0) // comment
	out = le.AppendUint16(out, 0) // disk number start
	out = le.AppendUint16(out, 0) // internal attrs
	out = le.AppendUint32(out, 0) // external attrs
	out = le.AppendUint32(out, offset)
	return append(out, e.Name...)
}

func appendEndRecord(out []byte, count int, dirSize, dirOffset uint32) []byte {
	le := binary.LittleEndian
	out = le.AppendUint32(out, endRecordSignature)
	out = le.AppendUint16(out, 0) // this disk
	out = le.AppendUint16(out, 0) // disk with directory
	out = le.AppendUint16(out, uint16(count))
	out = le.AppendUint16(out, uint16(count))
	out = le.AppendUint32(out, dirSize)
	out = le.AppendUint32(out, dirOffset)
	return le.AppendUint16(out, 0) // comment
}

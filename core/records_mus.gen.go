// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	mapnΔiRB8rkLjIKyPrlCOE4JgΞΞ   = ord.NewMapSer[string, string](ord.String, ord.String)
	sliceBcKpCEuBsoCcg2IwKfΔixwΞΞ = ord.NewSliceSer[float32](varint.Float32)
	slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var PaperStatusMUS = paperStatusMUS{}

type paperStatusMUS struct{}

func (s paperStatusMUS) Marshal(v PaperStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s paperStatusMUS) Unmarshal(bs []byte) (v PaperStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = PaperStatus(tmp)
	return
}

func (s paperStatusMUS) Size(v PaperStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s paperStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var ProcessingStageMUS = processingStageMUS{}

type processingStageMUS struct{}

func (s processingStageMUS) Marshal(v ProcessingStage, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s processingStageMUS) Unmarshal(bs []byte) (v ProcessingStage, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ProcessingStage(tmp)
	return
}

func (s processingStageMUS) Size(v ProcessingStage) (size int) {
	return varint.Int.Size(int(v))
}

func (s processingStageMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var PaperMUS = paperMUS{}

type paperMUS struct{}

func (s paperMUS) Marshal(v Paper, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Source, bs[n:])
	n += PaperStatusMUS.Marshal(v.Status, bs[n:])
	n += ProcessingStageMUS.Marshal(v.Stage, bs[n:])
	n += ord.String.Marshal(v.RawText, bs[n:])
	n += ord.String.Marshal(v.ErrorMessage, bs[n:])
	n += slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ.Marshal(v.Tags, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ.Marshal(v.Authors, bs[n:])
	n += ord.String.Marshal(v.Abstract, bs[n:])
	n += mapnΔiRB8rkLjIKyPrlCOE4JgΞΞ.Marshal(v.Summaries, bs[n:])
	n += varint.Int.Marshal(v.ChunkCount, bs[n:])
	n += ord.String.Marshal(v.BlobURL, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s paperMUS) Unmarshal(bs []byte) (v Paper, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = PaperStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Stage, n1, err = ProcessingStageMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RawText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ErrorMessage, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tags, n1, err = slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Authors, n1, err = slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Abstract, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summaries, n1, err = mapnΔiRB8rkLjIKyPrlCOE4JgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunkCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BlobURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s paperMUS) Size(v Paper) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Source)
	size += PaperStatusMUS.Size(v.Status)
	size += ProcessingStageMUS.Size(v.Stage)
	size += ord.String.Size(v.RawText)
	size += ord.String.Size(v.ErrorMessage)
	size += slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ.Size(v.Tags)
	size += ord.String.Size(v.Title)
	size += slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ.Size(v.Authors)
	size += ord.String.Size(v.Abstract)
	size += mapnΔiRB8rkLjIKyPrlCOE4JgΞΞ.Size(v.Summaries)
	size += varint.Int.Size(v.ChunkCount)
	size += ord.String.Size(v.BlobURL)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s paperMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = PaperStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ProcessingStageMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicebCIgZUSV19wkYΔxlPGFZ8AΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapnΔiRB8rkLjIKyPrlCOE4JgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var ChunkMetadataMUS = chunkMetadataMUS{}

type chunkMetadataMUS struct{}

func (s chunkMetadataMUS) Marshal(v ChunkMetadata, bs []byte) (n int) {
	n = IDMUS.Marshal(v.PaperId, bs)
	n += ord.String.Marshal(v.SectionTitle, bs[n:])
	n += varint.Int.Marshal(v.SectionIndex, bs[n:])
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	n += varint.Int.Marshal(v.Length, bs[n:])
	n += ord.String.Marshal(v.TextPreview, bs[n:])
	n += ord.Bool.Marshal(v.IsAbstract, bs[n:])
	n += ord.Bool.Marshal(v.IsIntroduction, bs[n:])
	n += ord.Bool.Marshal(v.IsMethodology, bs[n:])
	n += ord.Bool.Marshal(v.IsResults, bs[n:])
	n += ord.Bool.Marshal(v.IsDiscussion, bs[n:])
	return n + ord.Bool.Marshal(v.IsConclusion, bs[n:])
}

func (s chunkMetadataMUS) Unmarshal(bs []byte) (v ChunkMetadata, n int, err error) {
	v.PaperId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.SectionTitle, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SectionIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TextPreview, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IsAbstract, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IsIntroduction, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IsMethodology, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IsResults, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IsDiscussion, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IsConclusion, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMetadataMUS) Size(v ChunkMetadata) (size int) {
	size = IDMUS.Size(v.PaperId)
	size += ord.String.Size(v.SectionTitle)
	size += varint.Int.Size(v.SectionIndex)
	size += varint.Int.Size(v.ChunkIndex)
	size += varint.Int.Size(v.Length)
	size += ord.String.Size(v.TextPreview)
	size += ord.Bool.Size(v.IsAbstract)
	size += ord.Bool.Size(v.IsIntroduction)
	size += ord.Bool.Size(v.IsMethodology)
	size += ord.Bool.Size(v.IsResults)
	size += ord.Bool.Size(v.IsDiscussion)
	return size + ord.Bool.Size(v.IsConclusion)
}

func (s chunkMetadataMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	return
}

var VectorRecordMUS = vectorRecordMUS{}

type vectorRecordMUS struct{}

func (s vectorRecordMUS) Marshal(v VectorRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += sliceBcKpCEuBsoCcg2IwKfΔixwΞΞ.Marshal(v.Vector, bs[n:])
	return n + ChunkMetadataMUS.Marshal(v.Metadata, bs[n:])
}

func (s vectorRecordMUS) Unmarshal(bs []byte) (v VectorRecord, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Vector, n1, err = sliceBcKpCEuBsoCcg2IwKfΔixwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = ChunkMetadataMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s vectorRecordMUS) Size(v VectorRecord) (size int) {
	size = ord.String.Size(v.Id)
	size += sliceBcKpCEuBsoCcg2IwKfΔixwΞΞ.Size(v.Vector)
	return size + ChunkMetadataMUS.Size(v.Metadata)
}

func (s vectorRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = sliceBcKpCEuBsoCcg2IwKfΔixwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ChunkMetadataMUS.Skip(bs[n:])
	n += n1
	return
}

var IndexDescriptorMUS = indexDescriptorMUS{}

type indexDescriptorMUS struct{}

func (s indexDescriptorMUS) Marshal(v IndexDescriptor, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += varint.Int.Marshal(v.Dimension, bs[n:])
	return n + ord.String.Marshal(v.Metric, bs[n:])
}

func (s indexDescriptorMUS) Unmarshal(bs []byte) (v IndexDescriptor, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Dimension, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metric, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexDescriptorMUS) Size(v IndexDescriptor) (size int) {
	size = ord.String.Size(v.Name)
	size += varint.Int.Size(v.Dimension)
	return size + ord.String.Size(v.Metric)
}

func (s indexDescriptorMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

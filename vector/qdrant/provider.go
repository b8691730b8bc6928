// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package qdrant implements vector.Provider on a Qdrant server.
// Each index maps to a Qdrant collection; namespaces are a payload
// field filtered at query time.
package qdrant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qdrant/go-client/qdrant"

	"github.com/poiesic/papyrus/core"
	"github.com/poiesic/papyrus/vector"
)

const (
	payloadRecordID     = "record_id"
	payloadNamespace    = "namespace"
	payloadPaperID      = "paper_id"
	payloadSectionTitle = "section_title"
	payloadSectionIndex = "section_index"
	payloadChunkIndex   = "chunk_index"
	payloadLength       = "length"
	payloadTextPreview  = "text_preview"
)

var flagPayloadKeys = []string{
	"is_abstract",
	"is_introduction",
	"is_methodology",
	"is_results",
	"is_discussion",
	"is_conclusion",
}

// Config holds connection settings for a Qdrant server.
type Config struct {
	Host string
	Port int
}

// Provider is a Qdrant-backed vector.Provider.
type Provider struct {
	client *qdrant.Client
	logger *slog.Logger
}

// NewProvider connects to a Qdrant server.
//
// Returns vector.Provider interface to enforce abstraction.
func NewProvider(cfg Config) (vector.Provider, error) {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6334
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Host,
		Port: cfg.Port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	return &Provider{
		client: client,
		logger: slog.Default().With("component", "qdrant-vector-provider"),
	}, nil
}

var _ vector.Provider = (*Provider)(nil)

// CreateIndex creates a collection sized to the descriptor's
// dimension. Existing collections are left untouched.
func (p *Provider) CreateIndex(ctx context.Context, desc core.IndexDescriptor) error {
	if err := core.ValidateIndexDescriptor(desc); err != nil {
		return err
	}

	exists, err := p.client.CollectionExists(ctx, desc.Name)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", desc.Name, err)
	}
	if exists {
		return nil
	}

	err = p.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: desc.Name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(desc.Dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", desc.Name, err)
	}

	p.logger.Info("created qdrant collection", "name", desc.Name, "dimension", desc.Dimension)
	return nil
}

// ListIndexes returns the names of all collections.
func (p *Provider) ListIndexes(ctx context.Context) ([]string, error) {
	names, err := p.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// DescribeIndex returns the collection's declared vector dimension.
func (p *Provider) DescribeIndex(ctx context.Context, name string) (*core.IndexDescriptor, error) {
	exists, err := p.client.CollectionExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection %s: %w", name, err)
	}
	if !exists {
		return nil, vector.ErrIndexNotFound
	}

	info, err := p.client.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to describe collection %s: %w", name, err)
	}

	size := info.GetConfig().GetParams().GetVectorsConfig().GetParams().GetSize()
	return &core.IndexDescriptor{
		Name:      name,
		Dimension: int(size),
		Metric:    core.MetricCosine,
	}, nil
}

// Upsert writes records as points. Point ids are derived from the
// record id by content hash, so rewrites overwrite rather than
// duplicate; the original string id is preserved in the payload.
func (p *Provider) Upsert(ctx context.Context, index, namespace string, records []core.VectorRecord) error {
	points := make([]*qdrant.PointStruct, 0, len(records))
	for i := range records {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(core.IDFromContent(records[i].Id))),
			Vectors: qdrant.NewVectors(records[i].Vector...),
			Payload: qdrant.NewValueMap(recordPayload(&records[i], namespace)),
		})
	}

	_, err := p.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: index,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %d points into %s: %w", len(points), index, err)
	}
	return nil
}

// Query runs a similarity search, filtered by namespace when one is
// supplied.
func (p *Provider) Query(ctx context.Context, index, namespace string, vec []float32, topK int) ([]core.QueryMatch, error) {
	limit := uint64(topK)
	req := &qdrant.QueryPoints{
		CollectionName: index,
		Query:          qdrant.NewQuery(vec...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if namespace != "" {
		req.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch(payloadNamespace, namespace),
			},
		}
	}

	points, err := p.client.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("query against %s failed: %w", index, err)
	}

	matches := make([]core.QueryMatch, 0, len(points))
	for _, point := range points {
		meta := payloadMetadata(point.Payload)
		matches = append(matches, core.QueryMatch{
			Id:       stringValue(point.Payload, payloadRecordID),
			Score:    point.Score,
			Text:     meta.TextPreview,
			Metadata: meta,
		})
	}
	return matches, nil
}

// DeleteNamespace removes every point carrying the namespace payload.
func (p *Provider) DeleteNamespace(ctx context.Context, index, namespace string) error {
	_, err := p.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: index,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch(payloadNamespace, namespace),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete namespace %s from %s: %w", namespace, index, err)
	}
	return nil
}

// Close terminates the client connection.
func (p *Provider) Close() error {
	return p.client.Close()
}

func recordPayload(record *core.VectorRecord, namespace string) map[string]any {
	m := record.Metadata
	payload := map[string]any{
		payloadRecordID:     record.Id,
		payloadNamespace:    namespace,
		payloadPaperID:      int64(m.PaperId),
		payloadSectionTitle: m.SectionTitle,
		payloadSectionIndex: int64(m.SectionIndex),
		payloadChunkIndex:   int64(m.ChunkIndex),
		payloadLength:       int64(m.Length),
		payloadTextPreview:  m.TextPreview,
	}
	flags := []bool{m.IsAbstract, m.IsIntroduction, m.IsMethodology, m.IsResults, m.IsDiscussion, m.IsConclusion}
	for i, key := range flagPayloadKeys {
		payload[key] = flags[i]
	}
	return payload
}

func payloadMetadata(payload map[string]*qdrant.Value) core.ChunkMetadata {
	return core.ChunkMetadata{
		PaperId:        core.ID(intValue(payload, payloadPaperID)),
		SectionTitle:   stringValue(payload, payloadSectionTitle),
		SectionIndex:   int(intValue(payload, payloadSectionIndex)),
		ChunkIndex:     int(intValue(payload, payloadChunkIndex)),
		Length:         int(intValue(payload, payloadLength)),
		TextPreview:    stringValue(payload, payloadTextPreview),
		IsAbstract:     boolValue(payload, "is_abstract"),
		IsIntroduction: boolValue(payload, "is_introduction"),
		IsMethodology:  boolValue(payload, "is_methodology"),
		IsResults:      boolValue(payload, "is_results"),
		IsDiscussion:   boolValue(payload, "is_discussion"),
		IsConclusion:   boolValue(payload, "is_conclusion"),
	}
}

func stringValue(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func intValue(payload map[string]*qdrant.Value, key string) int64 {
	if v, ok := payload[key]; ok {
		return v.GetIntegerValue()
	}
	return 0
}

func boolValue(payload map[string]*qdrant.Value, key string) bool {
	if v, ok := payload[key]; ok {
		return v.GetBoolValue()
	}
	return false
}

package db_models

import (
	"github.com/pgvector/pgvector-go"
)

type PoiEmbedding struct {
	BaseModel
	PoiID     string          `gorm:"index"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}

package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/macseguridad/flota-backend/pkg/etlerrors"
	"github.com/macseguridad/flota-backend/pkg/logger"
)

// documentRow stores one document of one collection as a JSON payload. The
// embedded sink mimics the document store closely enough for local runs.
type documentRow struct {
	ID         uint   `gorm:"primaryKey"`
	Collection string `gorm:"size:64;uniqueIndex:idx_collection_key"`
	DocKey     string `gorm:"size:128;uniqueIndex:idx_collection_key"`
	Payload    string
}

func (documentRow) TableName() string { return "documents" }

// SQLite is the embedded dev sink behind the UseSQLite flag.
type SQLite struct {
	conn *gorm.DB
}

func NewSQLite(path string, logg *logger.Logger) (*SQLite, error) {
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, etlerrors.Wrap(etlerrors.CodeSinkUnavailable, err, "opening sqlite sink")
	}
	if err := conn.AutoMigrate(&documentRow{}); err != nil {
		return nil, etlerrors.Wrap(etlerrors.CodeSinkUnavailable, err, "migrating sqlite sink")
	}
	if logg != nil {
		logg.Info(context.Background(), "sqlite sink ready")
	}
	return &SQLite{conn: conn}, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return etlerrors.Wrap(etlerrors.CodeSinkUnavailable, err, "getting sql handle")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return etlerrors.Wrap(etlerrors.CodeSinkUnavailable, err, "pinging sqlite sink")
	}
	return nil
}

func (s *SQLite) UpsertByKey(ctx context.Context, collection, keyField string, docs []any) (int, error) {
	rows, err := toRows(collection, keyField, docs)
	if err != nil {
		return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, err, "encoding documents").WithDetails(collection)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tx := s.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&rows)
	if tx.Error != nil {
		return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, tx.Error, "upserting documents").WithDetails(collection)
	}
	return len(rows), nil
}

func (s *SQLite) ReplaceAll(ctx context.Context, collection string, docs []any) (int, error) {
	// encode before clearing so a bad document cannot leave the collection
	// emptied with nothing written
	rows, err := toRows(collection, "_id", docs)
	if err != nil {
		return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, err, "encoding documents").WithDetails(collection)
	}
	db := s.conn.WithContext(ctx)
	if tx := db.Where("collection = ?", collection).Delete(&documentRow{}); tx.Error != nil {
		return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, tx.Error, "clearing collection").WithDetails(collection)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if tx := db.Create(&rows); tx.Error != nil {
		return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, tx.Error, "inserting documents").WithDetails(collection)
	}
	return len(rows), nil
}

func (s *SQLite) Close(context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRows(collection, keyField string, docs []any) ([]documentRow, error) {
	rows := make([]documentRow, 0, len(docs))
	for _, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshaling document: %w", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, fmt.Errorf("unmarshaling document: %w", err)
		}
		key, _ := fields[keyField].(string)
		if key == "" {
			return nil, fmt.Errorf("document missing key field %q", keyField)
		}
		rows = append(rows, documentRow{
			Collection: collection,
			DocKey:     key,
			Payload:    string(payload),
		})
	}
	return rows, nil
}

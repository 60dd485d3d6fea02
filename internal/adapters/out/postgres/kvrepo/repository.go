package kvrepo

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKeyValueRepository implements ports.KeyValueStore on a single table.
type GormKeyValueRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
}

// NewGormKeyValueRepository creates a repository using db. The kv_entries
// table must exist (see EntryDTO and AutoMigrate).
func NewGormKeyValueRepository(db *gorm.DB) *GormKeyValueRepository {
	return &GormKeyValueRepository{
		db:     db,
		tracer: otel.Tracer("postgres-kv"),
	}
}

// Get returns the value stored under key.
func (r *GormKeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := r.tracer.Start(ctx, "KV.Get", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		recordError(span, err)
		return "", false, err
	}
	return dto.Value, true, nil
}

// Set upserts key.
func (r *GormKeyValueRepository) Set(ctx context.Context, key, value string) error {
	ctx, span := r.tracer.Start(ctx, "KV.Set", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	dto := EntryDTO{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		recordError(span, err)
	}
	return err
}

// Keys returns the keys starting with prefix, ordered by key.
func (r *GormKeyValueRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	ctx, span := r.tracer.Start(ctx, "KV.Keys", trace.WithAttributes(attribute.String("kv.prefix", prefix)))
	defer span.End()

	var keys []string
	err := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("key COLLATE \"C\"").
		Pluck("key", &keys).Error
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return keys, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes prefix match literally; "order_" would otherwise treat the
// underscore as a wildcard.
func escapeLike(prefix string) string {
	return likeEscaper.Replace(prefix)
}

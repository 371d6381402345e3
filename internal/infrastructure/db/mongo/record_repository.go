package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/securevault/vault-system/internal/core/domain"
)

// DefaultCollection is the collection vault rows live in.
const DefaultCollection = "secure_vault"

// RecordRepository implements ports.RecordRepository using MongoDB.
type RecordRepository struct {
	col *mongo.Collection
}

func NewRecordRepository(db *mongo.Database, collection string) *RecordRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &RecordRepository{col: db.Collection(collection)}
}

type mongoRecord struct {
	AccountIndex []byte `bson:"idx_account_id"`
	NameIndex    []byte `bson:"idx_name"`
	Ciphertext   []byte `bson:"ciphertext_blob"`
	Nonce        []byte `bson:"nonce"`
	AuthTag      []byte `bson:"auth_tag"`
	CreatedAt    int64  `bson:"created_at"`
}

// FindByIndex returns the first row whose blind index in column matches.
func (r *RecordRepository) FindByIndex(ctx context.Context, column domain.IndexColumn, index []byte) (*domain.SealedRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoRecord
	err := r.col.FindOne(ctx, bson.M{string(column): index}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}

	return &domain.SealedRecord{
		AccountIndex: doc.AccountIndex,
		NameIndex:    doc.NameIndex,
		Ciphertext:   doc.Ciphertext,
		Nonce:        doc.Nonce,
		AuthTag:      doc.AuthTag,
	}, nil
}

// Insert stores a sealed row.
func (r *RecordRepository) Insert(ctx context.Context, rec *domain.SealedRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRecord{
		AccountIndex: rec.AccountIndex,
		NameIndex:    rec.NameIndex,
		Ciphertext:   rec.Ciphertext,
		Nonce:        rec.Nonce,
		AuthTag:      rec.AuthTag,
		CreatedAt:    time.Now().UTC().Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// EnsureIndexes creates lookup indexes on both blind index fields.
func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: string(domain.IndexAccountID), Value: 1}}, Options: options.Index().SetName("idx_account_id_1")},
		{Keys: bson.D{{Key: string(domain.IndexName), Value: 1}}, Options: options.Index().SetName("idx_name_1")},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

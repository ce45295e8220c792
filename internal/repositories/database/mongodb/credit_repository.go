package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/fincore/credit-service/internal/core/domain"
	portsrepo "github.com/fincore/credit-service/internal/core/ports/repositories"
	"github.com/fincore/credit-service/internal/models"
	"github.com/fincore/credit-service/internal/utils/mapping"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const creditCollection = "credit"

// CreditRepository is the MongoDB adapter for credit persistence.
type CreditRepository struct {
	collection *mongo.Collection
}

// NewCreditRepository creates a CreditRepository backed by the given database.
func NewCreditRepository(db *mongo.Database) *CreditRepository {
	return &CreditRepository{collection: db.Collection(creditCollection)}
}

// Ensure the adapter satisfies the repository port.
var _ portsrepo.CreditRepository = (*CreditRepository)(nil)

// FindAllCredits retrieves every credit document.
func (r *CreditRepository) FindAllCredits(ctx context.Context) ([]domain.Credit, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding all credits: %w", err)
	}
	return decodeCredits(ctx, cursor)
}

// FindCreditByID retrieves a credit by its document id.
func (r *CreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	var m models.Credit
	err := r.collection.FindOne(ctx, bson.M{"_id": creditID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, creditID)
		}
		return nil, fmt.Errorf("finding credit %s: %w", creditID, err)
	}
	credit := mapping.ToDomainCredit(m)
	return &credit, nil
}

// FindCreditsByClientID retrieves every credit owned by a client. An empty
// result set is returned as an empty slice, not an error.
func (r *CreditRepository) FindCreditsByClientID(ctx context.Context, clientID string) ([]domain.Credit, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"clientId": clientID})
	if err != nil {
		return nil, fmt.Errorf("finding credits for client %s: %w", clientID, err)
	}
	return decodeCredits(ctx, cursor)
}

// SaveCredit persists a credit. A credit without an id gets a freshly
// assigned one and is inserted; otherwise the full document is replaced in a
// single write, which keeps payment application atomic at the store level.
func (r *CreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) (*domain.Credit, error) {
	if credit.CreditID == "" {
		credit.CreditID = uuid.NewString()
		if _, err := r.collection.InsertOne(ctx, mapping.ToModelCredit(credit)); err != nil {
			return nil, fmt.Errorf("inserting credit: %w", err)
		}
		return &credit, nil
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": credit.CreditID}, mapping.ToModelCredit(credit), opts); err != nil {
		return nil, fmt.Errorf("replacing credit %s: %w", credit.CreditID, err)
	}
	return &credit, nil
}

// DeleteCredit removes a credit document by id.
func (r *CreditRepository) DeleteCredit(ctx context.Context, credit domain.Credit) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": credit.CreditID})
	if err != nil {
		return fmt.Errorf("deleting credit %s: %w", credit.CreditID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, credit.CreditID)
	}
	return nil
}

func decodeCredits(ctx context.Context, cursor *mongo.Cursor) ([]domain.Credit, error) {
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var ms []models.Credit
	for cursor.Next(ctx) {
		var m models.Credit
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("decoding credit document: %w", err)
		}
		ms = append(ms, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating credit documents: %w", err)
	}
	return mapping.ToDomainCreditSlice(ms), nil
}

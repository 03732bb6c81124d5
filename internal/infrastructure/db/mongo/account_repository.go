package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ashkelon/forum/internal/core/domain"
)

const collectionAccounts = "accounts"

// AccountRepository implements ports.AccountRepository. The login is the
// document _id, so the primary index enforces uniqueness.
type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

type accountDoc struct {
	Login        string    `bson:"_id"`
	PasswordHash string    `bson:"password"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	Roles        []string  `bson:"roles"`
	ExpiresAt    time.Time `bson:"exp_date"`

	PasswordChangedAt time.Time `bson:"pwd_changed_at,omitempty"`
}

func toAccountDoc(a *domain.Account) accountDoc {
	roles := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles.Slice() {
		roles = append(roles, string(r))
	}
	return accountDoc{
		Login:        a.Login,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Roles:        roles,
		ExpiresAt:    a.ExpiresAt.UTC(),

		PasswordChangedAt: a.PasswordChangedAt.UTC(),
	}
}

func (d accountDoc) toDomain() *domain.Account {
	roles := domain.NewRoleSet()
	for _, r := range d.Roles {
		roles.Add(domain.Role(r))
	}
	return &domain.Account{
		Login:        d.Login,
		PasswordHash: d.PasswordHash,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Roles:        roles,
		ExpiresAt:    d.ExpiresAt.UTC(),

		PasswordChangedAt: d.PasswordChangedAt.UTC(),
	}
}

func (r *AccountRepository) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": login}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": login}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toAccountDoc(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// Save upserts every field of a. The stored password is only replaced when
// a carries a hash, so accounts read back from the cache can be saved.
func (r *AccountRepository) Save(ctx context.Context, a *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toAccountDoc(a)
	set := bson.M{
		"first_name": doc.FirstName,
		"last_name":  doc.LastName,
		"roles":      doc.Roles,
		"exp_date":   doc.ExpiresAt,
	}
	if doc.PasswordHash != "" {
		set["password"] = doc.PasswordHash
	}
	if !a.PasswordChangedAt.IsZero() {
		set["pwd_changed_at"] = doc.PasswordChangedAt
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": a.Login}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, login string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": login}); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// EnsureIndexes creates the secondary indexes of the accounts collection.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "roles", Value: 1}}})
	return err
}

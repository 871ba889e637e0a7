// Package registry exposes the six-operation external surface over a
// collection of independently addressable product aggregates:
// create_product, purchase, withdraw, grant_key_access, get_encrypted_key,
// and claim_compensation.
//
// Each public operation executes as one indivisible unit against its
// product: the registry holds one lock per product ID, so calls on the same
// product are serialized while calls on different products proceed in
// parallel. Mutating operations persist the product's snapshot to the bolt
// store before returning.
package registry

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poipnet/libpoip-go/access"
	"github.com/poipnet/libpoip-go/config"
	"github.com/poipnet/libpoip-go/event"
	"github.com/poipnet/libpoip-go/funds"
	"github.com/poipnet/libpoip-go/identity"
	"github.com/poipnet/libpoip-go/product"
	"github.com/poipnet/libpoip-go/store"
)

// lockedProduct pairs a product aggregate with its operation lock.
type lockedProduct struct {
	mu sync.Mutex
	p  *product.Product
}

// Registry manages product aggregates.
type Registry struct {
	mu       sync.Mutex
	products map[uuid.UUID]*lockedProduct
	closed   bool

	db    *BoltStore       // nil = no persistence
	blobs *store.FileStore // nil = storage pointers taken from params as-is
	sink  event.Sink
	log   *zap.Logger
}

// Options configures a Registry. Zero-value fields are valid: nil Sink
// discards events, nil Logger logs nothing, nil DB and Blobs disable
// persistence.
type Options struct {
	DB     *BoltStore
	Blobs  *store.FileStore
	Sink   event.Sink
	Logger *zap.Logger
}

// New creates a registry. If opts.DB is set, previously stored products
// are loaded.
func New(opts Options) (*Registry, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		products: make(map[uuid.UUID]*lockedProduct),
		db:       opts.DB,
		blobs:    opts.Blobs,
		sink:     opts.Sink,
		log:      log,
	}

	if r.db != nil {
		snaps, err := r.db.ListProducts()
		if err != nil {
			return nil, fmt.Errorf("registry: load products: %w", err)
		}
		for _, snap := range snaps {
			r.products[snap.ID] = &lockedProduct{p: product.FromSnapshot(snap, r.sink)}
		}
		log.Info("registry loaded", zap.Int("products", len(snaps)))
	}
	return r, nil
}

// Open builds a persistent registry from configuration: bolt database at
// {DataDir}/products.db and blob store at StoreDir.
func Open(cfg config.Config, sink event.Sink, logger *zap.Logger) (*Registry, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	db, err := OpenBoltStore(productDBPath(cfg.DataDir))
	if err != nil {
		return nil, err
	}
	blobs, err := store.NewFileStore(cfg.StoreDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	r, err := New(Options{DB: db, Blobs: blobs, Sink: sink, Logger: logger})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the underlying database. Further operations fail with
// ErrClosed.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateProduct validates params, stores the payload blob (when a blob
// store is configured, the product's storage pointer becomes the blob
// address), and registers a new Active product. Returns the product ID.
func (r *Registry) CreateProduct(params product.CreateParams) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return uuid.Nil, ErrClosed
	}

	if r.blobs != nil && len(params.Payload) > 0 {
		addr, err := r.blobs.Put(params.Payload)
		if err != nil {
			return uuid.Nil, fmt.Errorf("registry: store payload: %w", err)
		}
		params.StoragePointer = addr
	}

	p, err := product.Create(params, r.sink)
	if err != nil {
		return uuid.Nil, err
	}
	if err := r.persist(p); err != nil {
		return uuid.Nil, err
	}
	r.products[p.ID()] = &lockedProduct{p: p}

	r.log.Info("product created",
		zap.String("product", p.ID().String()),
		zap.String("creator", p.Creator().Hex()),
		zap.Uint64("price", p.Price()),
		zap.Uint64("goal", p.GoalCount()),
		zap.Uint64("max", p.MaxCount()),
	)
	return p.ID(), nil
}

// Purchase admits a purchase against the identified product. See
// product.Purchase for semantics.
func (r *Registry) Purchase(productID uuid.UUID, payment *funds.Balance, buyer identity.Principal) (*product.PurchaseRecord, access.DecryptionRequest, error) {
	lp, err := r.locked(productID)
	if err != nil {
		return nil, access.DecryptionRequest{}, err
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()

	rec, req, err := lp.p.Purchase(payment, buyer)
	if err != nil {
		return nil, access.DecryptionRequest{}, err
	}
	if err := r.persist(lp.p); err != nil {
		return nil, access.DecryptionRequest{}, err
	}
	r.log.Debug("purchase",
		zap.String("product", productID.String()),
		zap.String("buyer", buyer.Hex()),
		zap.Uint64("count", lp.p.BuyerCount()),
	)
	return rec, req, nil
}

// Withdraw moves funds from the product's ledger to dest. See
// product.Withdraw for semantics.
func (r *Registry) Withdraw(productID uuid.UUID, caller identity.Principal, amount uint64, dest *funds.Balance) error {
	lp, err := r.locked(productID)
	if err != nil {
		return err
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if err := lp.p.Withdraw(caller, amount, dest); err != nil {
		return err
	}
	if err := r.persist(lp.p); err != nil {
		return err
	}
	r.log.Debug("withdrawal",
		zap.String("product", productID.String()),
		zap.Uint64("amount", amount),
		zap.Uint64("balance", lp.p.Balance()),
	)
	return nil
}

// ClaimCompensation pays out newly accrued entitlement on rec. See
// product.ClaimCompensation for semantics.
func (r *Registry) ClaimCompensation(productID uuid.UUID, rec *product.PurchaseRecord, caller identity.Principal, dest *funds.Balance) (uint64, error) {
	lp, err := r.locked(productID)
	if err != nil {
		return 0, err
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()

	claimed, err := lp.p.ClaimCompensation(rec, caller, dest)
	if err != nil {
		return 0, err
	}
	if err := r.persist(lp.p); err != nil {
		return 0, err
	}
	return claimed, nil
}

// GrantKeyAccess exchanges a decryption request for a key capability. See
// product.GrantKeyAccess for semantics.
func (r *Registry) GrantKeyAccess(productID uuid.UUID, req access.DecryptionRequest, caller identity.Principal) (access.KeyCapability, error) {
	lp, err := r.locked(productID)
	if err != nil {
		return access.KeyCapability{}, err
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()

	cap, err := lp.p.GrantKeyAccess(req, caller)
	if err != nil {
		return access.KeyCapability{}, err
	}
	if err := r.persist(lp.p); err != nil {
		return access.KeyCapability{}, err
	}
	return cap, nil
}

// GetEncryptedKey discloses the product's opaque encrypted payload to a
// capability holder. Read-only.
func (r *Registry) GetEncryptedKey(productID uuid.UUID, cap access.KeyCapability) ([]byte, error) {
	lp, err := r.locked(productID)
	if err != nil {
		return nil, err
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.p.Disclose(cap)
}

// Compensation returns the current per-buyer entitlement for the product.
func (r *Registry) Compensation(productID uuid.UUID) (uint64, error) {
	lp, err := r.locked(productID)
	if err != nil {
		return 0, err
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return product.CalculateCompensation(lp.p), nil
}

// Snapshot returns a copy of the product's current state.
func (r *Registry) Snapshot(productID uuid.UUID) (*product.Snapshot, error) {
	lp, err := r.locked(productID)
	if err != nil {
		return nil, err
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.p.Snapshot(), nil
}

// locked looks up a product and its lock.
func (r *Registry) locked(id uuid.UUID) (*lockedProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	lp, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return lp, nil
}

// persist writes the product snapshot to the bolt store, if configured.
// Callers hold the product lock.
func (r *Registry) persist(p *product.Product) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.PutProduct(p.Snapshot()); err != nil {
		r.log.Error("persist failed", zap.String("product", p.ID().String()), zap.Error(err))
		return err
	}
	return nil
}

// productDBPath returns the bolt database path within a data directory.
func productDBPath(dataDir string) string {
	return filepath.Join(dataDir, "products.db")
}

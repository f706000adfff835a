// Package store contains the reference [domain.Store] implementation: an
// in-memory namespace registry that executes canonical query documents
// against stored records.
package store

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"maps"
	"slices"

	"github.com/dolmen-go/contextio"

	"github.com/docquery-go/docquery/adapter/comparer"
	"github.com/docquery-go/docquery/adapter/cursor"
	"github.com/docquery-go/docquery/adapter/data"
	"github.com/docquery-go/docquery/adapter/decoder"
	"github.com/docquery-go/docquery/adapter/evaluator"
	"github.com/docquery-go/docquery/adapter/fieldnavigator"
	"github.com/docquery-go/docquery/adapter/grouper"
	"github.com/docquery-go/docquery/adapter/idgenerator"
	"github.com/docquery-go/docquery/adapter/index"
	"github.com/docquery-go/docquery/adapter/projector"
	"github.com/docquery-go/docquery/adapter/registry"
	"github.com/docquery-go/docquery/domain"
	"github.com/docquery-go/docquery/pkg/ctxsync"
)

// DefaultIDLength is the identifier length generated for records inserted
// without one.
const DefaultIDLength = 16

type namespace struct {
	docs    []domain.Document
	indexes map[string]domain.Index
}

// Store implements [domain.Store].
type Store struct {
	mu         *ctxsync.Mutex
	namespaces map[string]*namespace

	docFac         domain.DocumentFactory
	comparer       domain.Comparer
	fieldNavigator domain.FieldNavigator
	evaluator      domain.Evaluator
	projector      domain.Projector
	grouper        domain.Grouper
	decoder        domain.Decoder
	idGenerator    domain.IDGenerator
	identifier     string
}

// NewStore returns a new implementation of [domain.Store].
func NewStore(options ...Option) domain.Store {
	s := &Store{
		mu:         ctxsync.NewMutex(),
		namespaces: make(map[string]*namespace),
	}
	for _, option := range options {
		option(s)
	}
	if s.docFac == nil {
		s.docFac = data.NewDocument
	}
	if s.comparer == nil {
		s.comparer = comparer.NewComparer()
	}
	if s.fieldNavigator == nil {
		s.fieldNavigator = fieldnavigator.NewFieldNavigator(
			fieldnavigator.WithDocumentFactory(s.docFac),
		)
	}
	if s.evaluator == nil {
		s.evaluator = evaluator.NewEvaluator(
			evaluator.WithComparer(s.comparer),
			evaluator.WithFieldNavigator(s.fieldNavigator),
		)
	}
	if s.identifier == "" {
		s.identifier = "_id"
	}
	if s.projector == nil {
		s.projector = projector.NewProjector(
			projector.WithDocumentFactory(s.docFac),
			projector.WithFieldNavigator(s.fieldNavigator),
			projector.WithIdentifierField(s.identifier),
		)
	}
	if s.grouper == nil {
		s.grouper = grouper.NewGrouper(
			grouper.WithDocumentFactory(s.docFac),
			grouper.WithFieldNavigator(s.fieldNavigator),
		)
	}
	if s.decoder == nil {
		s.decoder = decoder.NewDecoder()
	}
	if s.idGenerator == nil {
		s.idGenerator = idgenerator.NewIDGenerator()
	}
	return s
}

// Register implements [domain.Store].
func (s *Store) Register(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.namespaces[name]; ok {
		return domain.ErrNamespaceExists{Namespace: name}
	}
	s.namespaces[name] = &namespace{indexes: make(map[string]domain.Index)}
	return nil
}

// Namespaces implements [domain.Store].
func (s *Store) Namespaces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.namespaces))
}

// Insert implements [domain.Store].
func (s *Store) Insert(ctx context.Context, name string, records ...any) (domain.Cursor, error) {
	if err := s.mu.LockWithContext(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	ns, ok := s.namespaces[name]
	if !ok {
		return nil, domain.ErrUnknownNamespace
	}

	docs := make([]domain.Document, len(records))
	for n, record := range records {
		doc, err := s.docFac(record)
		if err != nil {
			return nil, err
		}
		if !doc.Has(s.identifier) {
			id, err := s.idGenerator.GenerateID(DefaultIDLength)
			if err != nil {
				return nil, err
			}
			doc.Set(s.identifier, id)
		}
		docs[n] = doc
	}

	for _, idx := range ns.indexes {
		if err := idx.Insert(ctx, docs...); err != nil {
			return nil, err
		}
	}
	ns.docs = append(ns.docs, docs...)

	return cursor.NewCursor(ctx, docs, cursor.WithDecoder(s.decoder))
}

// Load implements [domain.Store]. The reader holds one JSON record per line;
// blank lines are skipped.
func (s *Store) Load(ctx context.Context, name string, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(contextio.NewReader(ctx, r))

	var records []any
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc data.M
		if err := json.Unmarshal(line, &doc); err != nil {
			return 0, err
		}
		records = append(records, doc)
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	cur, err := s.Insert(ctx, name, records...)
	if err != nil {
		return 0, err
	}
	return len(records), cur.Close()
}

// EnsureIndex implements [domain.Store].
func (s *Store) EnsureIndex(ctx context.Context, name, field string) error {
	if err := s.mu.LockWithContext(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	ns, ok := s.namespaces[name]
	if !ok {
		return domain.ErrUnknownNamespace
	}
	if _, ok := ns.indexes[field]; ok {
		return nil
	}

	idx := index.NewIndex(field,
		index.WithComparer(s.comparer),
		index.WithFieldNavigator(s.fieldNavigator),
	)
	if err := idx.Insert(ctx, ns.docs...); err != nil {
		return err
	}
	ns.indexes[field] = idx
	return nil
}

// Execute implements [domain.Store]. Sections apply in a fixed order: filter,
// aggregate, order, paging, then select.
func (s *Store) Execute(ctx context.Context, doc domain.QueryDocument) (domain.Cursor, error) {
	if err := s.mu.LockWithContext(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	ns, ok := s.namespaces[doc.Namespace]
	if !ok {
		return nil, domain.ErrUnknownNamespace
	}

	res, err := s.filter(ctx, ns, doc.Filter)
	if err != nil {
		return nil, err
	}

	if res, err = s.grouper.Group(res, doc.Aggregate); err != nil {
		return nil, err
	}

	if len(doc.Option.Order) != 0 {
		if res, err = s.sort(res, doc.Option.Order); err != nil {
			return nil, err
		}
	}

	res = s.page(res, doc.Option)

	// Grouped documents carry only the grouped fields and the count, not the
	// identifier; the implicit identifier projection would strip them bare.
	if doc.Aggregate.Empty() || !s.identifierProjection(doc.Select) {
		if res, err = s.projector.Project(res, doc.Select); err != nil {
			return nil, err
		}
	}

	return cursor.NewCursor(ctx, slices.Clone(res), cursor.WithDecoder(s.decoder))
}

// Count implements [domain.Store].
func (s *Store) Count(ctx context.Context, name string, p domain.Predicate) (int64, error) {
	if err := s.mu.LockWithContext(ctx); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	ns, ok := s.namespaces[name]
	if !ok {
		return 0, domain.ErrUnknownNamespace
	}
	matched, err := s.filter(ctx, ns, p)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

// Drop implements [domain.Store].
func (s *Store) Drop(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.namespaces[name]; !ok {
		return domain.ErrUnknownNamespace
	}
	delete(s.namespaces, name)
	return nil
}

// identifierProjection reports whether the projection is the implicit one an
// absent select section normalizes to.
func (s *Store) identifierProjection(p domain.Projection) bool {
	if len(p.Fields) != 1 {
		return false
	}
	f := p.Fields[0]
	return f.Name == s.identifier && f.Include && f.Mode == ""
}

// filter returns the namespace documents matching the predicate, in insertion
// order. An index on the predicate field narrows the candidate set first.
func (s *Store) filter(ctx context.Context, ns *namespace, p domain.Predicate) ([]domain.Document, error) {
	candidates, err := s.candidates(ctx, ns, p)
	if err != nil {
		return nil, err
	}

	var res []domain.Document
	for _, doc := range candidates {
		matches, err := s.evaluator.Match(doc, p)
		if err != nil {
			return nil, err
		}
		if matches {
			res = append(res, doc)
		}
	}
	return res, nil
}

// candidates narrows the scan through an index when the predicate is a single
// equality, membership or range condition on an indexed field.
func (s *Store) candidates(ctx context.Context, ns *namespace, p domain.Predicate) ([]domain.Document, error) {
	if p.Leaf == nil {
		return ns.docs, nil
	}
	idx, ok := ns.indexes[p.Leaf.Field]
	if !ok {
		return ns.docs, nil
	}

	var narrowed []domain.Document
	var err error
	switch p.Leaf.Operator {
	case registry.OpEq, registry.OpIn:
		narrowed, err = idx.GetMatching(p.Leaf.Operands...)
	case registry.OpBetween:
		narrowed, err = idx.GetBetweenBounds(ctx, p.Leaf.Operands[0], p.Leaf.Operands[1])
	case registry.OpGt, registry.OpGe:
		narrowed, err = idx.GetBetweenBounds(ctx, p.Leaf.Operands[0], nil)
	case registry.OpLt, registry.OpLe:
		narrowed, err = idx.GetBetweenBounds(ctx, nil, p.Leaf.Operands[0])
	default:
		return ns.docs, nil
	}
	if err != nil {
		return nil, err
	}
	// Restore insertion order, the order the full scan would produce.
	return s.insertionOrder(ns, narrowed), nil
}

func (s *Store) insertionOrder(ns *namespace, docs []domain.Document) []domain.Document {
	ids := make(map[any]struct{}, len(docs))
	for _, doc := range docs {
		ids[doc.Get(s.identifier)] = struct{}{}
	}
	res := make([]domain.Document, 0, len(docs))
	for _, doc := range ns.docs {
		if _, ok := ids[doc.Get(s.identifier)]; ok {
			res = append(res, doc)
		}
	}
	return res
}

func (s *Store) sort(docs []domain.Document, order domain.Sort) ([]domain.Document, error) {
	res := slices.Clone(docs)
	var err error
	slices.SortStableFunc(res, func(a, b domain.Document) int {
		if err != nil {
			return 0
		}
		for _, criterion := range order {
			comp, cErr := s.compareByField(a, b, criterion.Key)
			if cErr != nil {
				err = cErr
				return 0
			}
			if comp != 0 {
				return comp * int(criterion.Order)
			}
		}
		return 0
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) compareByField(a, b domain.Document, field string) (int, error) {
	addr, err := s.fieldNavigator.GetAddress(field)
	if err != nil {
		return 0, err
	}
	fieldsA, _, err := s.fieldNavigator.GetField(a, addr...)
	if err != nil {
		return 0, err
	}
	fieldsB, _, err := s.fieldNavigator.GetField(b, addr...)
	if err != nil {
		return 0, err
	}
	return s.comparer.Compare(fieldsA[0], fieldsB[0])
}

// page applies the limit and page options. Page numbers are 1-based; page
// without limit is meaningless and ignored.
func (s *Store) page(docs []domain.Document, o domain.Options) []domain.Document {
	if o.Limit <= 0 {
		return docs
	}
	start := int64(0)
	if o.Page > 1 {
		start = (o.Page - 1) * o.Limit
	}
	if start >= int64(len(docs)) {
		return nil
	}
	end := min(start+o.Limit, int64(len(docs)))
	return docs[start:end]
}

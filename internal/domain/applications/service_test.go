package applications

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"pet-adoption-market/internal/domain/pets"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Application
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Application{}}
}

func (r *testRepo) Create(ctx context.Context, a Application) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Application) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return Application{}, errRepoNotFound
	}
	return a, nil
}

func (r *testRepo) ListByApplicant(ctx context.Context, applicantID string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListByPets(ctx context.Context, petIDs []string) ([]Application, error) {
	set := map[string]bool{}
	for _, id := range petIDs {
		set[id] = true
	}
	out := make([]Application, 0)
	for _, a := range r.byID {
		if set[a.PetID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListPendingByPet(ctx context.Context, petID string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.PetID == petID && a.Status == StatusPending {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteByPet(ctx context.Context, petID string) error {
	for id, a := range r.byID {
		if a.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}

// -------------------------
// Catalog y notifier fakes
// -------------------------

type testCatalog struct {
	byID       map[string]pets.Pet
	statusSets []string // "petID:status"
}

func newTestCatalog(items ...pets.Pet) *testCatalog {
	c := &testCatalog{byID: map[string]pets.Pet{}}
	for _, p := range items {
		c.byID[p.ID] = p
	}
	return c
}

func (c *testCatalog) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, ok := c.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (c *testCatalog) ListByPublisher(ctx context.Context, publisherID string) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for _, p := range c.byID {
		if p.PublisherID == publisherID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *testCatalog) SetStatus(ctx context.Context, petID, callerID string, status pets.Status) (pets.Pet, error) {
	p, ok := c.byID[petID]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	if p.PublisherID != callerID {
		return pets.Pet{}, pets.ErrForbidden
	}
	p.Status = status
	c.byID[petID] = p
	c.statusSets = append(c.statusSets, petID+":"+string(status))
	return p, nil
}

type sentNote struct {
	RecipientID string
	SenderID    string
	Title       string
}

type testNotifier struct {
	sent []sentNote
}

func (n *testNotifier) NotifyApplication(ctx context.Context, recipientID, senderID, title, content string) error {
	n.sent = append(n.sent, sentNote{RecipientID: recipientID, SenderID: senderID, Title: title})
	return nil
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		ApplicantName:    "Ana Perez",
		ApplicantEmail:   "ana@example.com",
		ApplicantPhone:   "+51 999 888 777",
		ApplicantAddress: "Av. Siempre Viva 123",
		HousingType:      "apartment",
		HasExperience:    true,
		Reason:           "Siempre quise un gato",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Submit_ReportsMissingFields(t *testing.T) {
	repo := newTestRepo()
	catalog := newTestCatalog(pets.Pet{ID: "pet-1", PublisherID: "pub-1", Name: "Luna"})
	svc := NewService(repo, catalog, nil, Config{})

	in := validSubmitInput()
	in.ApplicantEmail = ""
	in.Reason = "   " // solo espacios cuenta como faltante

	_, err := svc.Submit(context.Background(), "pet-1", "user-1", in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var mfe *MissingFieldsError
	if !errors.As(err, &mfe) {
		t.Fatalf("expected MissingFieldsError, got %T", err)
	}

	got := append([]string(nil), mfe.Fields...)
	sort.Strings(got)
	want := []string{"applicant_email", "reason"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("missing fields: got %v want %v", got, want)
	}

	if len(repo.byID) != 0 {
		t.Fatalf("invalid submit persisted an application")
	}
}

func TestService_Submit_UnknownPet(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestCatalog(), nil, Config{})

	if _, err := svc.Submit(context.Background(), "nope", "user-1", validSubmitInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Submit_CreatesPendingAndNotifiesPublisher(t *testing.T) {
	repo := newTestRepo()
	catalog := newTestCatalog(pets.Pet{ID: "pet-1", PublisherID: "pub-1", Name: "Luna"})
	notifier := &testNotifier{}
	svc := NewService(repo, catalog, notifier, Config{})

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, err := svc.Submit(context.Background(), "pet-1", "user-1", validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pending, got %q", a.Status)
	}
	if a.PetID != "pet-1" || a.ApplicantID != "user-1" {
		t.Fatalf("wrong linkage: pet=%q applicant=%q", a.PetID, a.ApplicantID)
	}
	if !a.CreatedAt.Equal(now) {
		t.Fatalf("created_at not from clock: %v", a.CreatedAt)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].RecipientID != "pub-1" || notifier.sent[0].SenderID != "user-1" {
		t.Fatalf("notification routed wrong: %+v", notifier.sent[0])
	}
}

func TestService_Decide_ConflictBeatsOwnership(t *testing.T) {
	repo := newTestRepo()
	catalog := newTestCatalog(pets.Pet{ID: "pet-1", PublisherID: "pub-1", Name: "Luna"})
	svc := NewService(repo, catalog, nil, Config{})

	a, err := svc.Submit(context.Background(), "pet-1", "user-1", validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// No-owner sobre una pending: forbidden
	if _, err := svc.Decide(context.Background(), a.ID, "otro", StatusApproved); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	// Owner decide una vez
	got, err := svc.Decide(context.Background(), a.ID, "pub-1", StatusApproved)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if got.Status != StatusApproved {
		t.Fatalf("expected approved, got %q", got.Status)
	}

	// Segunda decisión: conflict, incluso para el owner
	if _, err := svc.Decide(context.Background(), a.ID, "pub-1", StatusRejected); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second decide, got %v", err)
	}

	// Y también conflict para un caller cualquiera (el estado gana al ownership)
	if _, err := svc.Decide(context.Background(), a.ID, "otro", StatusRejected); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for non-owner on decided app, got %v", err)
	}

	// Outcome inválido
	if _, err := svc.Decide(context.Background(), a.ID, "pub-1", StatusPending); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pending outcome, got %v", err)
	}
}

func TestService_Decide_NotifiesApplicant(t *testing.T) {
	repo := newTestRepo()
	catalog := newTestCatalog(pets.Pet{ID: "pet-1", PublisherID: "pub-1", Name: "Luna"})
	notifier := &testNotifier{}
	svc := NewService(repo, catalog, notifier, Config{})

	a, err := svc.Submit(context.Background(), "pet-1", "user-1", validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	notifier.sent = nil

	if _, err := svc.Decide(context.Background(), a.ID, "pub-1", StatusRejected); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].RecipientID != "user-1" {
		t.Fatalf("decision notice routed wrong: %+v", notifier.sent[0])
	}
}

func TestService_Decide_CascadeApproval(t *testing.T) {
	repo := newTestRepo()
	catalog := newTestCatalog(pets.Pet{ID: "pet-1", PublisherID: "pub-1", Name: "Luna", Status: pets.StatusAvailable})
	notifier := &testNotifier{}
	svc := NewService(repo, catalog, notifier, Config{CascadeApproval: true})

	winner, err := svc.Submit(context.Background(), "pet-1", "user-1", validSubmitInput())
	if err != nil {
		t.Fatalf("submit winner: %v", err)
	}
	loser, err := svc.Submit(context.Background(), "pet-1", "user-2", validSubmitInput())
	if err != nil {
		t.Fatalf("submit loser: %v", err)
	}
	notifier.sent = nil

	if _, err := svc.Decide(context.Background(), winner.ID, "pub-1", StatusApproved); err != nil {
		t.Fatalf("decide: %v", err)
	}

	if p := catalog.byID["pet-1"]; p.Status != pets.StatusAdopted {
		t.Fatalf("expected pet adopted after cascade, got %q", p.Status)
	}

	sib, _ := repo.GetByID(context.Background(), loser.ID)
	if sib.Status != StatusRejected {
		t.Fatalf("expected sibling rejected, got %q", sib.Status)
	}

	// Dos avisos: rechazo del hermano + aprobación del ganador
	recipients := map[string]bool{}
	for _, n := range notifier.sent {
		recipients[n.RecipientID] = true
	}
	if !recipients["user-1"] || !recipients["user-2"] {
		t.Fatalf("cascade notifications incomplete: %+v", notifier.sent)
	}
}

func TestService_Decide_NoCascadeByDefault(t *testing.T) {
	repo := newTestRepo()
	catalog := newTestCatalog(pets.Pet{ID: "pet-1", PublisherID: "pub-1", Name: "Luna", Status: pets.StatusAvailable})
	svc := NewService(repo, catalog, nil, Config{})

	winner, err := svc.Submit(context.Background(), "pet-1", "user-1", validSubmitInput())
	if err != nil {
		t.Fatalf("submit winner: %v", err)
	}
	other, err := svc.Submit(context.Background(), "pet-1", "user-2", validSubmitInput())
	if err != nil {
		t.Fatalf("submit other: %v", err)
	}

	if _, err := svc.Decide(context.Background(), winner.ID, "pub-1", StatusApproved); err != nil {
		t.Fatalf("decide: %v", err)
	}

	if p := catalog.byID["pet-1"]; p.Status != pets.StatusAvailable {
		t.Fatalf("pet status changed without cascade: %q", p.Status)
	}
	sib, _ := repo.GetByID(context.Background(), other.ID)
	if sib.Status != StatusPending {
		t.Fatalf("sibling decided without cascade: %q", sib.Status)
	}
}

func TestService_ListForPublisher_OnlyOwnedPets(t *testing.T) {
	repo := newTestRepo()
	catalog := newTestCatalog(
		pets.Pet{ID: "pet-1", PublisherID: "pub-1", Name: "Luna"},
		pets.Pet{ID: "pet-2", PublisherID: "pub-2", Name: "Rocky"},
	)
	svc := NewService(repo, catalog, nil, Config{})

	if _, err := svc.Submit(context.Background(), "pet-1", "user-1", validSubmitInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "pet-2", "user-1", validSubmitInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.ListForPublisher(context.Background(), "pub-1")
	if err != nil {
		t.Fatalf("list for publisher: %v", err)
	}
	if len(got) != 1 || got[0].PetID != "pet-1" {
		t.Fatalf("expected only pet-1 applications, got %+v", got)
	}

	// Publisher sin publicaciones: lista vacía, no error
	none, err := svc.ListForPublisher(context.Background(), "pub-3")
	if err != nil {
		t.Fatalf("list for empty publisher: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty list, got %+v", none)
	}
}

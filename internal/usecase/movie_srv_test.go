package usecase

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/filter"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- Mocks ---

type mockMovieRepo struct {
	insertErr    error
	insertedDoc  *entity.Movie
	findResult   *entity.Movie
	findErr      error
	listResult   []*entity.Movie
	listTotal    int64
	listErr      error
	lastPred     filter.Predicate
	lastPage     filter.Page
	patchResult  *entity.Movie
	patchErr     error
	lastPatch    map[string]any
	deleteErr    error
	deletedID    uuid.UUID
}

func (m *mockMovieRepo) Insert(_ context.Context, movie *entity.Movie) error {
	m.insertedDoc = movie
	return m.insertErr
}

func (m *mockMovieRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Movie, error) {
	return m.findResult, m.findErr
}

func (m *mockMovieRepo) FindAll(_ context.Context, pred filter.Predicate, page filter.Page) ([]*entity.Movie, int64, error) {
	m.lastPred = pred
	m.lastPage = page
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockMovieRepo) ApplyPatch(_ context.Context, _ uuid.UUID, patch map[string]any) (*entity.Movie, error) {
	m.lastPatch = patch
	return m.patchResult, m.patchErr
}

func (m *mockMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.deletedID = id
	return m.deleteErr
}

func newMovieService(repo *mockMovieRepo, requireTitle bool) MovieService {
	return NewMovieService(
		&repository.Repository{Movie: repo},
		&utils.Config{Movie: utils.MovieConfig{RequireTitle: requireTitle}},
		zap.NewNop(),
	)
}

func validMovieRequest() *request.MovieRequest {
	title := "Inception"
	genre := "Action"
	rating := 8.0
	image := "http://x/y.jpg"
	description := "d"
	year := 2020.0
	trailer := "http://x/t.mp4"
	return &request.MovieRequest{
		Title:       &title,
		Genre:       &genre,
		Rating:      &rating,
		Image:       &image,
		Description: &description,
		Year:        &year,
		TrailerURL:  &trailer,
	}
}

// --- List ---

func TestListMovies_Envelope(t *testing.T) {
	year := 2020
	repo := &mockMovieRepo{
		listResult: []*entity.Movie{
			{ID: uuid.New(), Title: "A", Year: &year},
			{ID: uuid.New(), Title: "B"},
		},
		listTotal: 25,
	}
	svc := newMovieService(repo, true)

	got, err := svc.ListMovies(context.Background(), url.Values{"page": {"2"}, "pageSize": {"10"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Page != 2 || got.PageSize != 10 {
		t.Errorf("page/pageSize = %d/%d, want 2/10", got.Page, got.PageSize)
	}
	if got.Total != 25 {
		t.Errorf("total = %d, want 25", got.Total)
	}
	if got.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", got.TotalPages)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	if got.Items[1].Year != nil {
		t.Errorf("missing year must serialize as nil, got %v", *got.Items[1].Year)
	}
}

func TestListMovies_ForwardsPredicate(t *testing.T) {
	repo := &mockMovieRepo{}
	svc := newMovieService(repo, true)

	_, err := svc.ListMovies(context.Background(), url.Values{
		"search":   {"matrix"},
		"featured": {"true"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastPred.Search == nil || *repo.lastPred.Search != "matrix" {
		t.Errorf("search not forwarded: %+v", repo.lastPred)
	}
	if repo.lastPred.Featured == nil || !*repo.lastPred.Featured {
		t.Errorf("featured not forwarded: %+v", repo.lastPred)
	}
}

func TestListMovies_StoreFailure(t *testing.T) {
	repo := &mockMovieRepo{listErr: errors.New("connection refused")}
	svc := newMovieService(repo, true)

	_, err := svc.ListMovies(context.Background(), url.Values{})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, entity.ErrValidation) || errors.Is(err, entity.ErrNotFound) {
		t.Errorf("store failure must stay outside the taxonomy, got %v", err)
	}
}

// --- Get ---

func TestGetMovie_MalformedID(t *testing.T) {
	svc := newMovieService(&mockMovieRepo{}, true)

	_, err := svc.GetMovie(context.Background(), "not-a-uuid")
	if !errors.Is(err, entity.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	svc := newMovieService(&mockMovieRepo{}, true)

	_, err := svc.GetMovie(context.Background(), uuid.NewString())
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err.Error() != "Filme não encontrado." {
		t.Errorf("message = %q", err.Error())
	}
}

func TestGetMovie_Found(t *testing.T) {
	movie := &entity.Movie{ID: uuid.New(), Title: "Alien"}
	svc := newMovieService(&mockMovieRepo{findResult: movie}, true)

	got, err := svc.GetMovie(context.Background(), movie.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Alien" {
		t.Errorf("title = %q", got.Title)
	}
}

// --- Create ---

func TestCreateMovie_StrictRequiresTitle(t *testing.T) {
	req := validMovieRequest()
	req.Title = nil
	svc := newMovieService(&mockMovieRepo{}, true)

	_, err := svc.CreateMovie(context.Background(), req)
	if !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "title é obrigatório" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCreateMovie_LegacyAllowsMissingTitle(t *testing.T) {
	req := validMovieRequest()
	req.Title = nil
	svc := newMovieService(&mockMovieRepo{}, false)

	got, err := svc.CreateMovie(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Normalization fills the missing title on the way out
	if got.Title != entity.DefaultTitle {
		t.Errorf("title = %q, want %q", got.Title, entity.DefaultTitle)
	}
}

func TestCreateMovie_MissingRequiredField(t *testing.T) {
	req := validMovieRequest()
	req.Genre = nil
	svc := newMovieService(&mockMovieRepo{}, true)

	_, err := svc.CreateMovie(context.Background(), req)
	if !errors.Is(err, entity.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateMovie_RoundsYear(t *testing.T) {
	req := validMovieRequest()
	y := 2019.7
	req.Year = &y
	repo := &mockMovieRepo{}
	svc := newMovieService(repo, true)

	got, err := svc.CreateMovie(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year == nil || *got.Year != 2020 {
		t.Errorf("year = %v, want 2020", got.Year)
	}
	if repo.insertedDoc == nil || repo.insertedDoc.Year == nil || *repo.insertedDoc.Year != 2020 {
		t.Errorf("stored year not rounded: %+v", repo.insertedDoc)
	}
}

func TestCreateMovie_ReturnsNormalizedShape(t *testing.T) {
	req := validMovieRequest()
	repo := &mockMovieRepo{}
	svc := newMovieService(repo, true)

	got, err := svc.CreateMovie(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Featured {
		t.Error("absent featured must come back false")
	}
	if got.ID == "" {
		t.Error("expected store-assigned id")
	}
}

// --- Update ---

func TestUpdateMovie_EmptyPatch(t *testing.T) {
	svc := newMovieService(&mockMovieRepo{}, true)

	_, err := svc.UpdateMovie(context.Background(), uuid.NewString(), &request.MovieUpdateRequest{})
	if !errors.Is(err, entity.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateMovie_MalformedID(t *testing.T) {
	title := "x"
	svc := newMovieService(&mockMovieRepo{}, true)

	_, err := svc.UpdateMovie(context.Background(), "garbage", &request.MovieUpdateRequest{Title: &title})
	if !errors.Is(err, entity.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateMovie_NotFound(t *testing.T) {
	title := "x"
	svc := newMovieService(&mockMovieRepo{}, true)

	_, err := svc.UpdateMovie(context.Background(), uuid.NewString(), &request.MovieUpdateRequest{Title: &title})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestUpdateMovie_PartialPatch(t *testing.T) {
	rating := 9.1
	repo := &mockMovieRepo{patchResult: &entity.Movie{ID: uuid.New(), Rating: rating}}
	svc := newMovieService(repo, true)

	got, err := svc.UpdateMovie(context.Background(), uuid.NewString(), &request.MovieUpdateRequest{Rating: &rating})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rating != rating {
		t.Errorf("rating = %v, want %v", got.Rating, rating)
	}
	if len(repo.lastPatch) != 1 {
		t.Errorf("patch must carry only supplied fields, got %v", repo.lastPatch)
	}
	if _, ok := repo.lastPatch["rating"]; !ok {
		t.Errorf("patch missing rating: %v", repo.lastPatch)
	}
}

// --- Delete ---

func TestDeleteMovie_NotFound(t *testing.T) {
	svc := newMovieService(&mockMovieRepo{deleteErr: entity.ErrNotFound}, true)

	_, err := svc.DeleteMovie(context.Background(), uuid.NewString())
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err.Error() != "Filme não encontrado." {
		t.Errorf("message = %q", err.Error())
	}
}

func TestDeleteMovie_Success(t *testing.T) {
	repo := &mockMovieRepo{}
	svc := newMovieService(repo, true)

	id := uuid.NewString()
	got, err := svc.DeleteMovie(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id {
		t.Errorf("id = %q, want %q", got.ID, id)
	}
	if got.Message == "" {
		t.Error("expected confirmation message")
	}
	if repo.deletedID.String() != id {
		t.Errorf("deleted id = %q, want %q", repo.deletedID, id)
	}
}

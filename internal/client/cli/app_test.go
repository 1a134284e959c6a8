package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/classifieds/internal/client/client"
	"github.com/dmitrijs2005/classifieds/internal/client/config"
	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/services"
	"github.com/dmitrijs2005/classifieds/internal/client/session"
	"github.com/dmitrijs2005/classifieds/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "Str0ng!Pass1"

var (
	ann  = models.UserProfile{ID: "1", Email: "ann@x.com", Name: "Ann", Surname: "Smith"}
	root = models.UserProfile{ID: "99", Email: "root@x.com", IsAdmin: true}
)

// hits counts requests per "METHOD path" seen by the fake backend.
type hits struct {
	mu sync.Mutex
	n  map[string]int
}

func (h *hits) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		if h.n == nil {
			h.n = map[string]int{}
		}
		h.n[r.Method+" "+r.URL.Path]++
		h.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (h *hits) get(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n[key]
}

func (h *hits) total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, v := range h.n {
		n += v
	}
	return n
}

// newTestApp builds an App on a chi test backend with the real client and
// services, an in-memory session and input read from the given text. All
// user-facing output lands in the returned buffer.
func newTestApp(t *testing.T, input string, routes func(r chi.Router)) (*App, *bytes.Buffer, *hits) {
	t.Helper()

	h := &hits{}
	r := chi.NewRouter()
	r.Use(h.count)
	if routes != nil {
		routes(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := session.New(session.NewMemoryStorage(), nil)
	require.NoError(t, store.Restore(context.Background()))

	api, err := client.NewHTTPClient(srv.URL, store)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")
	cfg.DownloadDir = filepath.Join(t.TempDir(), "downloads")

	out := &bytes.Buffer{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(out, a...) }
	t.Cleanup(func() { printlnFn = orig })

	return &App{
		config:         cfg,
		log:            logging.Discard(),
		session:        store,
		authService:    services.NewAuthService(api, store),
		adService:      services.NewAdService(api, store),
		adminService:   services.NewAdminService(api, store, nil),
		contactService: services.NewContactService(api, store),
		images:         api,
		reader:         bufio.NewReader(strings.NewReader(input)),
		out:            out,
	}, out, h
}

// stubPasswords makes getPassword return the given values in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer, string) (string, error) {
		if len(pws) == 0 {
			return "", errors.New("no more passwords")
		}
		pw := pws[0]
		pws = pws[1:]
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func loginAs(t *testing.T, a *App, u models.UserProfile) {
	t.Helper()
	require.NoError(t, a.session.Login(context.Background(), "tok", u))
}

func reply(w http.ResponseWriter, r *http.Request, code int, v any) {
	render.Status(r, code)
	render.JSON(w, r, v)
}

func adminRoutes(users []models.UserProfile, ads []models.Ad) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/api/admin/users", func(w http.ResponseWriter, r *http.Request) { render.JSON(w, r, users) })
		r.Get("/api/admin/ads", func(w http.ResponseWriter, r *http.Request) { render.JSON(w, r, ads) })
	}
}

func TestLogin_UserLandsOnDashboard(t *testing.T) {
	stubPasswords(t, "pw")
	a, out, h := newTestApp(t, "ann@x.com\n", func(r chi.Router) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, http.StatusOK, map[string]any{"access_token": "tok", "user": ann})
		})
	})

	require.NoError(t, a.Login(context.Background(), nil))
	assert.True(t, a.isLoggedIn())
	assert.False(t, a.isAdmin())
	assert.Contains(t, out.String(), "Welcome, Ann Smith")
	assert.Equal(t, 1, h.total())
	assert.Equal(t, "(ann@x.com)", a.getStatus())
}

func TestLogin_AdminLoadsPanel(t *testing.T) {
	stubPasswords(t, "pw")
	users := []models.UserProfile{ann, root}
	ads := []models.Ad{{ID: "5", Title: "Bike", Status: models.AdStatusReview}}

	a, out, _ := newTestApp(t, "", func(r chi.Router) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, http.StatusOK, map[string]any{"token": "tok", "user": root})
		})
		adminRoutes(users, ads)(r)
	})

	require.NoError(t, a.Login(context.Background(), []string{"root@x.com"}))
	assert.True(t, a.isAdmin())
	assert.Contains(t, out.String(), "Admin panel: 2 users (1 admins, 0 blocked), 1 ads (1 in review)")
	assert.Equal(t, "(root@x.com admin)", a.getStatus())
}

func TestLogin_FailureKeepsGuest(t *testing.T) {
	stubPasswords(t, "bad")
	a, _, _ := newTestApp(t, "ann@x.com\n", func(r chi.Router) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, http.StatusForbidden, map[string]string{"detail": "Account blocked"})
		})
	})

	err := a.Login(context.Background(), nil)
	require.EqualError(t, err, "Account blocked")
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "(guest)", a.getStatus())
}

func TestRegister_SendsAllFields(t *testing.T) {
	stubPasswords(t, strongPassword, strongPassword)

	var got models.RegisterRequest
	a, out, _ := newTestApp(t, "ann@x.com\nann@x.com\nAnn\nSmith\n", func(r chi.Router) {
		r.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			reply(w, r, http.StatusCreated, map[string]string{"msg": "ok"})
		})
	})

	require.NoError(t, a.Register(context.Background(), nil))
	assert.Equal(t, "Smith", got.Surname)
	assert.Equal(t, strongPassword, got.PasswordConfirm)
	assert.Contains(t, out.String(), "Strength: ")
	assert.Contains(t, out.String(), "Registration successful")
}

func TestRegister_WeakPasswordNeverSent(t *testing.T) {
	stubPasswords(t, "weak", "weak")
	a, _, h := newTestApp(t, "ann@x.com\nann@x.com\nAnn\nSmith\n", nil)

	err := a.Register(context.Background(), nil)
	require.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Zero(t, h.total())
}

func TestWhoami(t *testing.T) {
	a, out, _ := newTestApp(t, "", nil)

	require.NoError(t, a.Whoami(context.Background(), nil))
	assert.Contains(t, out.String(), "Not logged in")

	loginAs(t, a, root)
	out.Reset()
	require.NoError(t, a.Whoami(context.Background(), nil))
	assert.Contains(t, out.String(), "Email:   root@x.com")
	assert.Contains(t, out.String(), "Role:    administrator")
	assert.NotContains(t, out.String(), "Session:", "an opaque token has no expiry")
}

func TestStrength(t *testing.T) {
	stubPasswords(t, "abcdefgh1")
	a, out, h := newTestApp(t, "", nil)

	require.NoError(t, a.Strength(context.Background(), nil))
	s := out.String()
	assert.Contains(t, s, "[x] at least 8 characters")
	assert.Contains(t, s, "[x] a digit")
	assert.Contains(t, s, "[ ] an upper-case letter")
	assert.Contains(t, s, "does not satisfy the policy")
	assert.Zero(t, h.total())
}

func TestChangePassword_RequiresLogin(t *testing.T) {
	a, _, _ := newTestApp(t, "", nil)
	require.ErrorIs(t, a.ChangePassword(context.Background(), nil), services.ErrNotAuthenticated)
}

func TestResetPassword_TokenFromArgs(t *testing.T) {
	stubPasswords(t, strongPassword, strongPassword)

	var got models.ResetPasswordRequest
	a, out, _ := newTestApp(t, "", func(r chi.Router) {
		r.Post("/api/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			reply(w, r, http.StatusOK, map[string]string{"msg": "ok"})
		})
	})

	require.NoError(t, a.ResetPassword(context.Background(), []string{"reset-tok"}))
	assert.Equal(t, "reset-tok", got.Token)
	assert.Contains(t, out.String(), "Password has been reset")
}

func TestNewAd_UploadsImages(t *testing.T) {
	img := filepath.Join(t.TempDir(), "bike.png")
	require.NoError(t, os.WriteFile(img, []byte("\x89PNG\r\n\x1a\nrest"), 0o600))

	var title, userID string
	var files int
	input := strings.Join([]string{"Red bike", "Almost new", "", img, "", ""}, "\n")
	a, out, _ := newTestApp(t, input, func(r chi.Router) {
		r.Post("/api/ads/create", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				title = r.FormValue("title")
				userID = r.FormValue("user_id")
				files = len(r.MultipartForm.File["images"])
			}
			reply(w, r, http.StatusOK, map[string]any{"ad_id": 5, "msg": "Ad created", "status": "review"})
		})
	})
	loginAs(t, a, ann)

	require.NoError(t, a.NewAd(context.Background(), nil))
	assert.Equal(t, "Red bike", title)
	assert.Equal(t, "1", userID)
	assert.Equal(t, 1, files)
	assert.Contains(t, out.String(), "Ad 5 created (review)")
	assert.Contains(t, out.String(), "Ad created")
}

func TestNewAd_MissingFileFailsBeforeRequest(t *testing.T) {
	input := strings.Join([]string{"Red bike", "Almost new", "", "/no/such/file.png", ""}, "\n")
	a, _, h := newTestApp(t, input, nil)
	loginAs(t, a, ann)

	require.Error(t, a.NewAd(context.Background(), nil))
	assert.Zero(t, h.total())
}

func TestEditAd_EmptyAnswersKeepTexts(t *testing.T) {
	mine := []models.Ad{{ID: "3", Title: "Bike", Description: "Red bike", Images: []models.Image{{ID: "30", URL: "/static/a.png"}}}}

	var title, desc string
	a, out, _ := newTestApp(t, "\n\n\n", func(r chi.Router) {
		r.Get("/api/ads/user/{id}", func(w http.ResponseWriter, r *http.Request) { render.JSON(w, r, mine) })
		r.Put("/api/ads/edit/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				title, desc = r.FormValue("title"), r.FormValue("description")
			}
			reply(w, r, http.StatusOK, map[string]string{"msg": "updated"})
		})
	})
	loginAs(t, a, ann)

	require.NoError(t, a.EditAd(context.Background(), []string{"3"}))
	assert.Equal(t, "Bike", title)
	assert.Equal(t, "Red bike", desc)
	assert.Contains(t, out.String(), "Ad updated")
}

func TestEditAd_Errors(t *testing.T) {
	a, _, _ := newTestApp(t, "", func(r chi.Router) {
		r.Get("/api/ads/user/{id}", func(w http.ResponseWriter, r *http.Request) { render.JSON(w, r, []models.Ad{}) })
	})
	loginAs(t, a, ann)

	require.EqualError(t, a.EditAd(context.Background(), nil), "usage: editad <ad-id>")
	require.EqualError(t, a.EditAd(context.Background(), []string{"8"}), "you have no ad with id 8")
}

func TestMyAds_ResolvesImageURLs(t *testing.T) {
	mine := []models.Ad{{ID: "3", Title: "Bike", Images: []models.Image{{ID: "30", URL: "/static/a.png"}}}}
	a, out, _ := newTestApp(t, "", func(r chi.Router) {
		r.Get("/api/ads/user/{id}", func(w http.ResponseWriter, r *http.Request) { render.JSON(w, r, mine) })
	})
	loginAs(t, a, ann)

	require.NoError(t, a.MyAds(context.Background(), nil))
	assert.Contains(t, out.String(), "[3] Bike (active)")
	assert.Contains(t, out.String(), "image 30: "+a.config.APIBaseURL+"/static/a.png")
}

func TestDeleteAd_CancelledSendsNothing(t *testing.T) {
	a, out, h := newTestApp(t, "n\n", nil)
	loginAs(t, a, ann)

	require.NoError(t, a.DeleteAd(context.Background(), []string{"3"}))
	assert.Contains(t, out.String(), "Cancelled")
	assert.Zero(t, h.total())
}

func TestSaveImage_WritesIntoDownloadDir(t *testing.T) {
	a, out, _ := newTestApp(t, "", func(r chi.Router) {
		r.Get("/static/cat.png", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("meow")) })
	})

	require.NoError(t, a.SaveImage(context.Background(), []string{"/static/cat.png"}))

	data, err := os.ReadFile(filepath.Join(a.config.DownloadDir, "cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))
	assert.Contains(t, out.String(), "Saved 4 bytes")
}

func TestContact_UsesSessionEmail(t *testing.T) {
	var email string
	a, out, _ := newTestApp(t, "Hello there\nI would like to ask about the bike.\n\n", func(r chi.Router) {
		r.Post("/api/contact", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				email = r.FormValue("email")
			}
			reply(w, r, http.StatusOK, map[string]string{"msg": "sent"})
		})
	})
	loginAs(t, a, ann)

	require.NoError(t, a.Contact(context.Background(), nil))
	assert.Equal(t, "ann@x.com", email)
	assert.Contains(t, out.String(), "Message sent")
}

func TestUsersAndAdList_LoadPanelOnFirstUse(t *testing.T) {
	users := []models.UserProfile{ann, root}
	ads := []models.Ad{
		{ID: "5", Title: "Bike", UserEmail: "ann@x.com"},
		{ID: "6", Title: "Sofa", UserEmail: "root@x.com"},
	}
	a, out, h := newTestApp(t, "", adminRoutes(users, ads))
	loginAs(t, a, root)

	require.NoError(t, a.Users(context.Background(), []string{"ann"}))
	assert.Contains(t, out.String(), "ann@x.com")
	assert.NotContains(t, out.String(), "root@x.com")
	assert.Contains(t, out.String(), "1 user(s)")

	require.NoError(t, a.AdList(context.Background(), []string{"sofa"}))
	assert.Contains(t, out.String(), "Sofa")
	assert.Contains(t, out.String(), "1 ad(s)")

	assert.Equal(t, 1, h.get("GET /api/admin/users"), "the panel is loaded once")
}

func TestDeleteUser_AdminTargetAsksPassword(t *testing.T) {
	stubPasswords(t, "my admin pw")
	other := models.UserProfile{ID: "2", Email: "bob@x.com", IsAdmin: true}

	var got models.DeleteUserRequest
	a, out, _ := newTestApp(t, "y\n", func(r chi.Router) {
		adminRoutes([]models.UserProfile{ann, other, root}, nil)(r)
		r.Delete("/api/admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			reply(w, r, http.StatusOK, map[string]string{"msg": "deleted"})
		})
	})
	loginAs(t, a, root)

	require.NoError(t, a.DeleteUser(context.Background(), []string{"2"}))
	assert.Equal(t, "my admin pw", got.AdminPassword)
	assert.Contains(t, out.String(), "User deleted")
	_, ok := a.adminService.State().FindUser("2")
	assert.False(t, ok)
}

func TestBlockUser_UsageAndForbidden(t *testing.T) {
	a, _, _ := newTestApp(t, "", func(r chi.Router) {
		r.Post("/api/admin/users/{id}/block", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, http.StatusForbidden, map[string]string{"detail": "nope"})
		})
	})
	loginAs(t, a, root)

	require.EqualError(t, a.BlockUser(context.Background(), nil), "usage: block <user-id>")
	require.EqualError(t, a.BlockUser(context.Background(), []string{"1"}), client.MsgAdminRequired)
}

func TestExport_DefaultName(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { now = orig })

	a, out, _ := newTestApp(t, "", adminRoutes([]models.UserProfile{ann, root}, []models.Ad{{ID: "5", Title: "Bike"}}))
	loginAs(t, a, root)

	require.NoError(t, a.Export(context.Background(), nil))

	path := filepath.Join(a.config.ExportDir, "panel-20240102-030405.xlsx")
	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Exported to "+path)

	require.NoError(t, a.Export(context.Background(), []string{"../report"}))
	_, err = os.Stat(filepath.Join(a.config.ExportDir, "report.xlsx"))
	require.NoError(t, err)
}

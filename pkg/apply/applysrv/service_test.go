package applysrv_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminahr/portal/pkg/apply"
	"github.com/luminahr/portal/pkg/apply/applysrv"
	"github.com/luminahr/portal/pkg/config"
	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/ptrx"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeDraftRepo struct {
	drafts       map[kernel.DraftID]apply.Draft
	lastAppIDs   map[kernel.DraftID]string
	cameraActive map[kernel.DraftID]bool
	saveCount    int
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{
		drafts:       make(map[kernel.DraftID]apply.Draft),
		lastAppIDs:   make(map[kernel.DraftID]string),
		cameraActive: make(map[kernel.DraftID]bool),
	}
}

func (r *fakeDraftRepo) Save(ctx context.Context, d apply.Draft) error {
	if !apply.ShouldPersist(d) {
		return nil
	}
	r.drafts[d.ID] = d
	r.saveCount++
	return nil
}

func (r *fakeDraftRepo) Restore(ctx context.Context, id kernel.DraftID) (*apply.Draft, error) {
	d, ok := r.drafts[id]
	if !ok {
		return nil, apply.ErrDraftNotFound()
	}
	return &d, nil
}

func (r *fakeDraftRepo) Clear(ctx context.Context, id kernel.DraftID) error {
	delete(r.drafts, id)
	delete(r.cameraActive, id)
	return nil
}

func (r *fakeDraftRepo) SetLastApplicationID(ctx context.Context, id kernel.DraftID, appID string) error {
	r.lastAppIDs[id] = appID
	return nil
}

func (r *fakeDraftRepo) GetLastApplicationID(ctx context.Context, id kernel.DraftID) (string, error) {
	return r.lastAppIDs[id], nil
}

func (r *fakeDraftRepo) SetCameraStreamActive(ctx context.Context, id kernel.DraftID, active bool) error {
	r.cameraActive[id] = active
	return nil
}

func (r *fakeDraftRepo) StaleDraftIDs(ctx context.Context, olderThan time.Time) ([]kernel.DraftID, error) {
	var ids []kernel.DraftID
	for id, d := range r.drafts {
		if d.UpdatedAt.Before(olderThan) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeGateway struct {
	response *apply.SubmissionResponse
	err      error
	payloads []apply.ApplicationPayload
}

func (g *fakeGateway) SubmitApplication(ctx context.Context, payload apply.ApplicationPayload, cv, video apply.FileRef) (*apply.SubmissionResponse, error) {
	g.payloads = append(g.payloads, payload)
	if g.err != nil {
		return nil, g.err
	}
	return g.response, nil
}

type fakeCamera struct {
	stopped []kernel.DraftID
}

func (c *fakeCamera) StopCameraStreams(ctx context.Context, id kernel.DraftID) error {
	c.stopped = append(c.stopped, id)
	return nil
}

type memoryFS struct {
	objects map[string][]byte
}

func newMemoryFS() *memoryFS {
	return &memoryFS{objects: make(map[string][]byte)}
}

func (f *memoryFS) Write(ctx context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *memoryFS) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *memoryFS) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *memoryFS) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

// ============================================================================
// Helpers
// ============================================================================

func testConfig() *config.DraftConfig {
	return &config.DraftConfig{
		Retention:     30 * 24 * time.Hour,
		SweepInterval: 6 * time.Hour,
		MaxUploadSize: 1024,
		CameraChannel: "portal:camera",
	}
}

func newService(repo *fakeDraftRepo, gateway *fakeGateway) (*applysrv.DraftService, *fakeCamera, *memoryFS) {
	camera := &fakeCamera{}
	fs := newMemoryFS()
	svc := applysrv.NewDraftService(repo, gateway, camera, fs, testConfig())
	return svc, camera, fs
}

func seedDraft(repo *fakeDraftRepo) kernel.DraftID {
	id := kernel.DraftID("draft-1")
	d := apply.NewDraft(id)
	d.Personal.FullName = "Amina Ben Salah"
	d.Personal.Email = "amina@example.com"
	repo.drafts[id] = d
	return id
}

// ============================================================================
// Tests
// ============================================================================

func TestOpenDraft_NewDraftAppliesDeepLink(t *testing.T) {
	repo := newFakeDraftRepo()
	svc, _, _ := newService(repo, &fakeGateway{})

	d, err := svc.OpenDraft(context.Background(), kernel.DraftID("d-new"), apply.DeepLink{Step: "3", OfferID: "offer-9"})
	require.NoError(t, err)

	assert.Equal(t, 3, d.CurrentStep)
	assert.Equal(t, "offer-9", d.OfferID)
	assert.True(t, d.ParamsConsumed)
}

func TestOpenDraft_RestoredDraftIgnoresParams(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	d := repo.drafts[id]
	d = d.ConsumeDeepLink(apply.DeepLink{Step: "4"})
	repo.drafts[id] = d

	svc, _, _ := newService(repo, &fakeGateway{})
	restored, err := svc.OpenDraft(context.Background(), id, apply.DeepLink{Step: "8", OfferID: "late"})
	require.NoError(t, err)

	assert.Equal(t, 4, restored.CurrentStep)
	assert.Empty(t, restored.OfferID)
}

func TestSetPersonalField_PersistsOnlyAfterGuard(t *testing.T) {
	repo := newFakeDraftRepo()
	id := kernel.DraftID("d-blank")
	repo.drafts[id] = apply.NewDraft(id)

	svc, _, _ := newService(repo, &fakeGateway{})

	// address alone does not satisfy the save guard
	_, err := svc.SetPersonalField(context.Background(), id, "address", "Somewhere 1")
	require.NoError(t, err)
	assert.Zero(t, repo.saveCount)

	_, err = svc.SetPersonalField(context.Background(), id, "full_name", "Amina")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saveCount)
}

func TestAttachCV_RejectsOversizedFile(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	svc, _, fs := newService(repo, &fakeGateway{})

	big := make([]byte, 2048) // config caps at 1024
	_, err := svc.AttachCV(context.Background(), id, "cv.pdf", "application/pdf", big)
	require.Error(t, err)
	assert.Empty(t, fs.objects)
}

func TestAttachCV_StoresAndAttaches(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	svc, _, fs := newService(repo, &fakeGateway{})

	d, err := svc.AttachCV(context.Background(), id, "cv.pdf", "application/pdf", []byte("pdf-bytes"))
	require.NoError(t, err)

	assert.Equal(t, apply.FilePresent, d.CV.Kind)
	assert.Equal(t, "cv.pdf", d.CV.Name)
	assert.Len(t, fs.objects, 1)
}

func TestAttachCV_ReplacesPreviousObject(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	svc, _, fs := newService(repo, &fakeGateway{})

	_, err := svc.AttachCV(context.Background(), id, "old.pdf", "application/pdf", []byte("v1"))
	require.NoError(t, err)
	_, err = svc.AttachCV(context.Background(), id, "new.pdf", "application/pdf", []byte("v2"))
	require.NoError(t, err)

	assert.NotContains(t, fs.objects, "drafts/draft-1/cv/old.pdf")
	assert.Contains(t, fs.objects, "drafts/draft-1/cv/new.pdf")
	assert.Len(t, fs.objects, 1)
}

func TestDetachCV_DeletesStoredObject(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	svc, _, fs := newService(repo, &fakeGateway{})

	_, err := svc.AttachCV(context.Background(), id, "cv.pdf", "application/pdf", []byte("pdf-bytes"))
	require.NoError(t, err)

	d, err := svc.DetachCV(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, apply.FileNone, d.CV.Kind)
	assert.Empty(t, fs.objects)
}

func TestDetachVideo_DeletesStoredObject(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	svc, _, fs := newService(repo, &fakeGateway{})

	_, err := svc.AttachVideo(context.Background(), id, "video/webm", []byte{1, 2, 3})
	require.NoError(t, err)

	d, err := svc.DetachVideo(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, apply.FileNone, d.Video.Kind)
	assert.Empty(t, fs.objects)
}

func TestDiscardDraft_PurgesKeysAndFiles(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	svc, _, fs := newService(repo, &fakeGateway{})

	_, err := svc.AttachCV(context.Background(), id, "cv.pdf", "application/pdf", []byte("pdf-bytes"))
	require.NoError(t, err)
	_, err = svc.AttachVideo(context.Background(), id, "video/webm", []byte{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, svc.DiscardDraft(context.Background(), id))

	assert.NotContains(t, repo.drafts, id)
	assert.Empty(t, fs.objects)
}

// ── Retention sweep ────────────────────────────────────────────────────────

func TestSweep_PurgesStaleDraftFiles(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	svc, _, fs := newService(repo, &fakeGateway{})

	_, err := svc.AttachCV(context.Background(), id, "cv.pdf", "application/pdf", []byte("pdf-bytes"))
	require.NoError(t, err)

	stale := repo.drafts[id]
	stale.UpdatedAt = time.Now().Add(-31 * 24 * time.Hour) // past the 30d retention
	repo.drafts[id] = stale

	sweeper := applysrv.NewRetentionSweeper(repo, fs, testConfig())
	sweeper.Sweep(context.Background())

	assert.NotContains(t, repo.drafts, id)
	assert.Empty(t, fs.objects)
}

// ── Submit: success detection ──────────────────────────────────────────────

func TestSubmit_SuccessVariants(t *testing.T) {
	cases := []struct {
		name     string
		response *apply.SubmissionResponse
		want     bool
	}{
		{"explicit success flag", &apply.SubmissionResponse{Success: ptrx.Ptr(true)}, true},
		{"id only", &apply.SubmissionResponse{ApplicationID: "app-1"}, true},
		{"camelCase id only", &apply.SubmissionResponse{ApplicationIDAlt: "app-2"}, true},
		{"success false but id present", &apply.SubmissionResponse{Success: ptrx.Ptr(false), ApplicationID: "app-3"}, true},
		{"nothing useful", &apply.SubmissionResponse{Message: "received"}, false},
		{"success false, no id", &apply.SubmissionResponse{Success: ptrx.Ptr(false)}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeDraftRepo()
			id := seedDraft(repo)
			svc, _, _ := newService(repo, &fakeGateway{response: c.response})

			result, _, err := svc.Submit(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, c.want, result.Succeeded)
		})
	}
}

func TestSubmit_SuccessClearsDraftAndStopsCamera(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	gateway := &fakeGateway{response: &apply.SubmissionResponse{Success: ptrx.Ptr(true), ApplicationID: "app-42"}}
	svc, camera, _ := newService(repo, gateway)

	result, blank, err := svc.Submit(context.Background(), id)
	require.NoError(t, err)

	assert.True(t, result.Succeeded)
	assert.Equal(t, "app-42", result.ApplicationID)
	assert.Equal(t, []kernel.DraftID{id}, camera.stopped)
	assert.NotContains(t, repo.drafts, id, "draft should be cleared after success")
	assert.Equal(t, "app-42", repo.lastAppIDs[id])

	// the returned draft is reset but not persisted (save guard)
	assert.Equal(t, apply.StepPersonal, blank.CurrentStep)
	assert.Empty(t, blank.Personal.FullName)
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	svc, camera, _ := newService(repo, &fakeGateway{err: errors.New("boom")})

	result, kept, err := svc.Submit(context.Background(), id)
	require.NoError(t, err, "submission failure must not surface as a technical error")

	assert.False(t, result.Succeeded)
	assert.Contains(t, repo.drafts, id)
	assert.Equal(t, "Amina Ben Salah", kept.Personal.FullName)
	assert.Empty(t, camera.stopped)
}

// ── Submit: failure message mapping ────────────────────────────────────────

func TestSubmit_FailureMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"network", errors.New("network unreachable"), "Unable to reach the server. Please check your connection and try again."},
		{"fetch", errors.New("failed to fetch application endpoint"), "Unable to reach the server. Please check your connection and try again."},
		{"timeout", errors.New("context deadline exceeded: timeout"), "The request timed out. Please try again."},
		{"payload size", errors.New("your files are too large for this endpoint"), "Your files are too large. Please compress them and try again."},
		{"other errors pass through", errors.New("column does not exist"), "column does not exist"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeDraftRepo()
			id := seedDraft(repo)
			svc, _, _ := newService(repo, &fakeGateway{err: c.err})

			result, _, err := svc.Submit(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, c.want, result.Message)
		})
	}
}

func TestSubmit_BackendFailureMessage(t *testing.T) {
	cases := []struct {
		name     string
		response *apply.SubmissionResponse
		want     string
	}{
		{"backend message passes through", &apply.SubmissionResponse{Success: ptrx.Ptr(false), Message: "quota exceeded for this offer"}, "quota exceeded for this offer"},
		{"message without flag passes through", &apply.SubmissionResponse{Message: "applications are closed"}, "applications are closed"},
		{"empty response falls back to generic", &apply.SubmissionResponse{}, "Something went wrong while submitting your application."},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeDraftRepo()
			id := seedDraft(repo)
			svc, _, _ := newService(repo, &fakeGateway{response: c.response})

			result, _, err := svc.Submit(context.Background(), id)
			require.NoError(t, err)
			assert.False(t, result.Succeeded)
			assert.Equal(t, c.want, result.Message)
		})
	}
}

func TestSubmit_SendsBuiltPayload(t *testing.T) {
	repo := newFakeDraftRepo()
	id := seedDraft(repo)
	d := repo.drafts[id]
	d.Skills = []string{"Go", " "}
	repo.drafts[id] = d

	gateway := &fakeGateway{response: &apply.SubmissionResponse{ApplicationID: "app-1"}}
	svc, _, _ := newService(repo, gateway)

	_, _, err := svc.Submit(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, gateway.payloads, 1)
	assert.Equal(t, []string{"Go"}, gateway.payloads[0].Skills)
	assert.Equal(t, "Amina Ben Salah", gateway.payloads[0].FullName)
}

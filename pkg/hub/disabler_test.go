package hub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errUpdateFailed = errors.New("update failed")
	errServerDown   = errors.New("server down")
)

// fakeAPI is an in-memory stand-in for the parts of the API the disabler
// touches. Updates mutate the store unless the record still has stale writes
// left; staleWrites counts how many writes are silently dropped before one
// finally takes.
type fakeAPI struct {
	bom     []BomComponent
	bomErr  error
	origins map[string][]Origin

	records      map[string][]CopyrightRecord
	failUpdates  map[string]int
	staleWrites  map[string]int
	listCalls    map[string]int
	updateCalls  map[string]int
	lastParams   *QueryParams
	listErrHrefs map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		origins:      map[string][]Origin{},
		records:      map[string][]CopyrightRecord{},
		failUpdates:  map[string]int{},
		staleWrites:  map[string]int{},
		listCalls:    map[string]int{},
		updateCalls:  map[string]int{},
		listErrHrefs: map[string]error{},
	}
}

func (f *fakeAPI) addRecord(originHref, recordHref string, active bool) {
	f.records[originHref] = append(f.records[originHref], CopyrightRecord{
		Active:      active,
		KBCopyright: "Copyright (c) Example",
		Meta:        &Meta{Href: recordHref},
	})
}

type fakeClient struct{ api *fakeAPI }

func (c *fakeClient) Projects() ProjectsClient               { return nil }
func (c *fakeClient) ProjectVersions() ProjectVersionsClient { return fakeVersions{c.api} }
func (c *fakeClient) Components() ComponentsClient           { return fakeComponents{c.api} }
func (c *fakeClient) Copyrights() CopyrightsClient           { return fakeCopyrights{c.api} }
func (c *fakeClient) Users() UsersClient                     { return nil }
func (c *fakeClient) UserGroups() UserGroupsClient           { return nil }
func (c *fakeClient) CodeLocations() CodeLocationsClient     { return nil }
func (c *fakeClient) Reports() ReportsClient                 { return nil }
func (c *fakeClient) Notifications() NotificationsClient     { return nil }
func (c *fakeClient) Journal() JournalClient                 { return nil }
func (c *fakeClient) CurrentUser() CurrentUserClient         { return nil }
func (c *fakeClient) Generic() GenericClient                 { return nil }

type fakeVersions struct{ api *fakeAPI }

func (v fakeVersions) Get(context.Context, string) (*ProjectVersion, error) { return nil, nil }

func (v fakeVersions) ListBomComponents(_ context.Context, _ string, params *QueryParams) (*PagedResponse[BomComponent], error) {
	if v.api.bomErr != nil {
		return nil, v.api.bomErr
	}

	v.api.lastParams = params.Clone()

	if params.Offset >= len(v.api.bom) {
		return &PagedResponse[BomComponent]{TotalCount: len(v.api.bom)}, nil
	}

	return &PagedResponse[BomComponent]{
		TotalCount: len(v.api.bom),
		Items:      v.api.bom[params.Offset:],
	}, nil
}

func (v fakeVersions) ListCodeLocations(context.Context, *ProjectVersion) (*PagedResponse[CodeLocation], error) {
	return nil, nil
}

func (v fakeVersions) Delete(context.Context, string) error { return nil }

type fakeComponents struct{ api *fakeAPI }

func (c fakeComponents) ListOrigins(_ context.Context, component *BomComponent) ([]Origin, error) {
	return c.api.origins[component.ComponentName], nil
}

func (c fakeComponents) Search(context.Context, string) (*PagedResponse[ComponentSearchResult], error) {
	return nil, nil
}

func (c fakeComponents) AutocompleteKB(context.Context, string) (*PagedResponse[KBComponent], error) {
	return nil, nil
}

func (c fakeComponents) FindKBBySuiteID(context.Context, string) (*PagedResponse[KBComponent], error) {
	return nil, nil
}

type fakeCopyrights struct{ api *fakeAPI }

func (c fakeCopyrights) ListForOrigin(_ context.Context, originHref string) ([]CopyrightRecord, error) {
	c.api.listCalls[originHref]++

	if err := c.api.listErrHrefs[originHref]; err != nil {
		return nil, err
	}

	out := make([]CopyrightRecord, len(c.api.records[originHref]))
	copy(out, c.api.records[originHref])

	return out, nil
}

func (c fakeCopyrights) Update(_ context.Context, record *CopyrightRecord) error {
	href := record.Meta.Href
	c.api.updateCalls[href]++

	if c.api.failUpdates[href] > 0 {
		c.api.failUpdates[href]--

		return errUpdateFailed
	}

	if c.api.staleWrites[href] > 0 {
		c.api.staleWrites[href]--

		return nil
	}

	for originHref, records := range c.api.records {
		for i := range records {
			if records[i].Meta.Href == href {
				c.api.records[originHref][i].Active = record.Active
			}
		}
	}

	return nil
}

func bomComponent(name string, originHrefs ...string) BomComponent {
	component := BomComponent{ComponentName: name, ComponentVersionName: "1.0.0"}

	for _, href := range originHrefs {
		component.Origins = append(component.Origins, BomOrigin{
			Name: "origin-" + href,
			Meta: &Meta{Href: href},
		})
	}

	return component
}

func TestCopyrightDisablerRun(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()

	// Component A has no embedded origins and resolves three through the
	// component endpoint; component B carries one embedded origin.
	api.bom = []BomComponent{
		bomComponent("alpha"),
		bomComponent("beta", "/origins/4"),
	}
	api.origins["alpha"] = []Origin{
		{OriginName: "alpha-src", Meta: &Meta{Href: "/origins/1"}},
		{OriginName: "alpha-bin", Meta: &Meta{Href: "/origins/2"}},
		{OriginName: "alpha-doc", Meta: &Meta{Href: "/origins/3"}},
	}

	// Origins 1 to 3: a lone record each, protected by the policy.
	api.addRecord("/origins/1", "/copyrights/1a", true)
	api.addRecord("/origins/2", "/copyrights/2a", true)
	api.addRecord("/origins/3", "/copyrights/3a", true)
	// Origin 4: one active, one already inactive.
	api.addRecord("/origins/4", "/copyrights/4a", true)
	api.addRecord("/origins/4", "/copyrights/4b", false)

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{OnlyDisableMultiple: true})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Components)
	assert.Equal(t, 4, stats.Origins)
	assert.Equal(t, 5, stats.Copyrights)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 4, stats.Skipped)
	assert.Equal(t, 0, stats.Errors)
	assert.Equal(t, 0, stats.ValidationFailures)
	assert.Empty(t, stats.Failures)

	// The policy-protected origins never see a write or a verification.
	assert.Equal(t, 1, api.listCalls["/origins/1"])
	assert.Equal(t, 1, api.listCalls["/origins/2"])
	assert.Equal(t, 1, api.listCalls["/origins/3"])
	assert.Equal(t, 0, api.updateCalls["/copyrights/1a"])

	// The write stuck, so origin 4 needed one pass plus one verification.
	assert.Equal(t, 2, api.listCalls["/origins/4"])
	assert.Equal(t, 1, api.updateCalls["/copyrights/4a"])
	assert.Equal(t, 0, api.updateCalls["/copyrights/4b"])

	assert.False(t, api.records["/origins/4"][0].Active)
	assert.True(t, api.records["/origins/1"][0].Active)
}

func TestCopyrightDisablerBomQuery(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	_, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	require.NotNil(t, api.lastParams)
	values := api.lastParams.ToValues()
	assert.Equal(t, "projectName ASC", values.Get("sort"))
	assert.ElementsMatch(t, []string{"bomInclusion:false", "bomMatchInclusion:false"}, values["filter"])
}

func TestCopyrightDisablerStaleWrites(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}
	api.addRecord("/origins/1", "/copyrights/1a", true)
	api.staleWrites["/copyrights/1a"] = 100

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	// The initial pass plus five retries, each with its own verification
	// fetch, then give up.
	assert.Equal(t, 6, api.updateCalls["/copyrights/1a"])
	assert.Equal(t, 12, api.listCalls["/origins/1"])
	assert.Equal(t, 1, stats.ValidationFailures)
	assert.Equal(t, 6, stats.Copyrights)
	assert.Equal(t, 6, stats.Updated)
	assert.Equal(t, 0, stats.Errors)
}

func TestCopyrightDisablerStaleWriteRecoversOnLastRetry(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}
	api.addRecord("/origins/1", "/copyrights/1a", true)
	// Stale through the fourth retry; the fifth and final retry sticks.
	api.staleWrites["/copyrights/1a"] = 5

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	assert.Equal(t, 0, stats.ValidationFailures)
	assert.Equal(t, 6, api.updateCalls["/copyrights/1a"])
	assert.False(t, api.records["/origins/1"][0].Active)
}

func TestCopyrightDisablerNoCopyrights(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Components)
	assert.Equal(t, 1, stats.Origins)
	assert.Equal(t, 0, stats.Copyrights)
	assert.Equal(t, 1, api.listCalls["/origins/1"])
}

func TestCopyrightDisablerSinglePolicy(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}
	api.addRecord("/origins/1", "/copyrights/1a", true)

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{OnlyDisableMultiple: true})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Copyrights)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 0, api.updateCalls["/copyrights/1a"])
	assert.Equal(t, 1, api.listCalls["/origins/1"])
	assert.True(t, api.records["/origins/1"][0].Active)
}

func TestCopyrightDisablerSingleWithoutPolicy(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}
	api.addRecord("/origins/1", "/copyrights/1a", true)

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 0, stats.Skipped)
	assert.False(t, api.records["/origins/1"][0].Active)
}

func TestCopyrightDisablerAlreadyInactive(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}
	api.addRecord("/origins/1", "/copyrights/1a", false)
	api.addRecord("/origins/1", "/copyrights/1b", false)

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Copyrights)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 0, stats.Updated)
	// Nothing changed, so no verification fetch.
	assert.Equal(t, 1, api.listCalls["/origins/1"])
}

func TestCopyrightDisablerWriteFailure(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}
	api.addRecord("/origins/1", "/copyrights/1a", true)
	api.addRecord("/origins/1", "/copyrights/1b", true)
	api.addRecord("/origins/1", "/copyrights/1c", true)
	// The middle write fails once, then sticks on the retry pass.
	api.failUpdates["/copyrights/1b"] = 1

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	// The retry pass re-examines all three records and re-counts the two
	// already written as skips.
	assert.Equal(t, 6, stats.Copyrights)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 3, stats.Updated)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, []string{"/copyrights/1b"}, stats.Failures)
	assert.Equal(t, 0, stats.ValidationFailures)

	// A failed write does not stop the siblings in the same pass.
	assert.Equal(t, 1, api.updateCalls["/copyrights/1a"])
	assert.Equal(t, 2, api.updateCalls["/copyrights/1b"])
	assert.Equal(t, 1, api.updateCalls["/copyrights/1c"])
}

func TestCopyrightDisablerFetchErrorSkipsOrigin(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1", "/origins/2")}
	api.listErrHrefs["/origins/1"] = errServerDown
	api.addRecord("/origins/2", "/copyrights/2a", true)

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	// The broken origin is abandoned; its sibling still gets processed.
	assert.Equal(t, 2, stats.Origins)
	assert.Equal(t, 1, stats.Updated)
}

func TestCopyrightDisablerFatalBomError(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bomErr = errServerDown

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.Error(t, err)
	require.ErrorIs(t, err, errServerDown)
	assert.Nil(t, stats)
}

func TestCopyrightDisablerOriginWithoutHref(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	component := BomComponent{ComponentName: "alpha", Origins: []BomOrigin{{Name: "no-href"}}}
	api.bom = []BomComponent{component}

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	stats, err := disabler.Run(context.Background(), "/versions/1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Components)
	assert.Equal(t, 0, stats.Origins)
}

func TestRunStatsSummary(t *testing.T) {
	t.Parallel()

	stats := &RunStats{
		Components: 2,
		Origins:    4,
		Copyrights: 5,
		Updated:    1,
		Skipped:    4,
		Failures:   []string{"/copyrights/9"},
	}

	summary := stats.Summary()
	assert.Contains(t, summary, "copyrights: 5")
	assert.Contains(t, summary, "updated: 1")
	assert.Contains(t, summary, "failed: /copyrights/9")
}

func TestBomOriginHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		origin   BomOrigin
		wantHref string
		wantOK   bool
	}{
		{
			name:     "own href",
			origin:   BomOrigin{Meta: &Meta{Href: "/origins/1"}},
			wantHref: "/origins/1",
			wantOK:   true,
		},
		{
			name: "origin link fallback",
			origin: BomOrigin{Meta: &Meta{
				Links: []Link{{Rel: "origin", Href: "/origins/2"}},
			}},
			wantHref: "/origins/2",
			wantOK:   true,
		},
		{
			name:   "no meta",
			origin: BomOrigin{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			href, ok := tt.origin.Href()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantHref, href)
		})
	}
}

// Guards against the retry loop spinning without a bound when writes are
// flaky forever.
func TestCopyrightDisablerPersistentFailureBounded(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.bom = []BomComponent{bomComponent("alpha", "/origins/1")}
	api.addRecord("/origins/1", "/copyrights/1a", true)
	api.failUpdates["/copyrights/1a"] = 100

	disabler := NewCopyrightDisabler(&fakeClient{api}, nil, DisableOptions{})

	done := make(chan struct{})

	go func() {
		defer close(done)

		stats, err := disabler.Run(context.Background(), "/versions/1")
		if !assert.NoError(t, err) {
			return
		}

		// The first pass changes nothing, so there is no verify-retry cycle.
		assert.Equal(t, 1, stats.Errors)
		assert.Equal(t, 0, stats.Updated)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("disabler did not terminate")
	}
}

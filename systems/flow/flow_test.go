package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/go-home-io/minerhub/mocks"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entries struct {
	created []*miner.ConfigEntry
	err     error
}

func (e *entries) create(entry *miner.ConfigEntry) error {
	if nil != e.err {
		return e.err
	}

	e.created = append(e.created, entry)
	return nil
}

func getManager(m miner.IMiner) (IManager, *entries) {
	e := &entries{}
	return NewManager(&ConstructManager{
		Logger:   mocks.FakeNewLogger(nil),
		Factory:  mocks.FakeNewMinerFactory(m, nil),
		OnCreate: e.create,
	}), e
}

func names(fields []*Field) []string {
	res := make([]string, 0)
	for _, v := range fields {
		res = append(res, v.Name)
	}
	return res
}

// Tests the whole flow.
func TestFullFlow(t *testing.T) {
	m := mocks.FakeNewMiner("10.0.0.2", 3)
	mgr, e := getManager(m)
	ctx := context.Background()

	r, err := mgr.Start(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, ResultForm, r.Type)
	assert.Equal(t, StepUser, r.StepID)
	assert.Equal(t, &Field{Name: "ip", Type: FieldString, Required: true}, r.Fields[0])

	r, err = mgr.Step(ctx, r.FlowID, map[string]string{"ip": "10.0.0.2"})
	require.NoError(t, err)
	assert.Equal(t, StepLogin, r.StepID)
	want := []*Field{
		{Name: "rpc_password", Type: FieldPassword, Default: "admin", Autocomplete: "current-password"},
		{Name: "web_username", Type: FieldString, Required: true, Default: "root"},
		{Name: "web_password", Type: FieldPassword, Default: "root", Autocomplete: "current-password"},
		{Name: "ssh_username", Type: FieldString, Required: true, Default: "root"},
		{Name: "ssh_password", Type: FieldPassword, Default: "admin", Autocomplete: "current-password"},
	}
	if diff := cmp.Diff(want, r.Fields); diff != "" {
		t.Errorf("login form mismatch (-want +got):\n%s", diff)
	}

	r, err = mgr.Step(ctx, r.FlowID, map[string]string{"web_password": "secret", "unknown": "x"})
	require.NoError(t, err)
	assert.Equal(t, StepTitle, r.StepID)
	assert.Equal(t, "antminer", r.Fields[0].Default)

	r, err = mgr.Step(ctx, r.FlowID, map[string]string{"title": "Garage S9"})
	require.NoError(t, err)
	assert.Equal(t, ResultCreateEntry, r.Type)
	assert.Equal(t, "Garage S9", r.Title)

	require.Equal(t, 1, len(e.created))
	wantEntry := &miner.ConfigEntry{
		ID:    "garage_s9",
		Title: "Garage S9",
		Data: map[string]string{
			"ip":           "10.0.0.2",
			"rpc_password": "admin",
			"web_username": "root",
			"web_password": "secret",
			"ssh_username": "root",
			"ssh_password": "admin",
			"title":        "Garage S9",
		},
	}
	if diff := cmp.Diff(wantEntry, e.created[0]); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	_, err = mgr.Step(ctx, r.FlowID, map[string]string{"title": "Garage S9"})
	assert.IsType(t, &ErrFlowNotFound{}, err)
}

// Tests unreachable miner.
func TestUnreachableMiner(t *testing.T) {
	mgr, _ := getManager(nil)
	ctx := context.Background()

	for _, ip := range []string{"10.0.0.3", "bad host", ""} {
		r, err := mgr.Start(ctx, map[string]string{"ip": ip})
		require.NoError(t, err)
		assert.Equal(t, StepUser, r.StepID, ip)
		if "" == ip {
			assert.Equal(t, map[string]string{"ip": ErrorRequired}, r.Errors)
			continue
		}

		assert.Equal(t, map[string]string{"base": "Unable to connect to Miner, is IP correct?"}, r.Errors)
		assert.Equal(t, ip, r.Fields[0].Default)
	}
}

// Tests factory failure.
func TestFactoryError(t *testing.T) {
	mgr := NewManager(&ConstructManager{
		Logger:   mocks.FakeNewLogger(nil),
		Factory:  mocks.FakeNewMinerFactory(nil, errors.New("dial error")),
		OnCreate: (&entries{}).create,
	})

	r, err := mgr.Start(context.Background(), map[string]string{"ip": "10.0.0.3"})
	require.NoError(t, err)
	assert.Equal(t, ErrorCannotConnect, r.Errors[ErrorBase])
}

// Tests login form of the miner without RPC password and SSH.
func TestLoginFieldsDependOnMiner(t *testing.T) {
	m := mocks.FakeNewMiner("10.0.0.2", 3)
	m.RPCCreds = &miner.Credentials{}
	m.SSHCreds = nil
	m.WebCreds = &miner.Credentials{Username: "admin"}
	mgr, _ := getManager(m)

	r, err := mgr.Start(context.Background(), map[string]string{"ip": "10.0.0.2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"web_username", "web_password"}, names(r.Fields))
	assert.Equal(t, "", r.Fields[1].Default)

	r, err = mgr.Step(context.Background(), r.FlowID, map[string]string{"web_username": ""})
	require.NoError(t, err)
	assert.Equal(t, StepLogin, r.StepID)
	assert.Equal(t, ErrorRequired, r.Errors["web_username"])
	assert.Equal(t, "", r.Fields[0].Default)
}

// Tests random title when hostname is unknown.
func TestRandomTitle(t *testing.T) {
	m := mocks.FakeNewMiner("10.0.0.2", 3)
	m.HostErr = errors.New("no hostname")
	mgr, _ := getManager(m)
	ctx := context.Background()

	r, _ := mgr.Start(ctx, map[string]string{"ip": "10.0.0.2"})
	r, _ = mgr.Step(ctx, r.FlowID, map[string]string{"web_username": "root"})
	require.Equal(t, StepTitle, r.StepID)
	title := r.Fields[0].Default
	assert.NotEqual(t, "", title)

	r, _ = mgr.Step(ctx, r.FlowID, map[string]string{})
	assert.Equal(t, title, r.Fields[0].Default)
}

// Tests failed entry creation.
func TestCreateFailure(t *testing.T) {
	m := mocks.FakeNewMiner("10.0.0.2", 3)
	mgr, e := getManager(m)
	e.err = errors.New("entry already exists")
	ctx := context.Background()

	r, _ := mgr.Start(ctx, map[string]string{"ip": "10.0.0.2"})
	r, _ = mgr.Step(ctx, r.FlowID, map[string]string{"web_username": "root"})
	r, err := mgr.Step(ctx, r.FlowID, map[string]string{"title": "x"})
	require.NoError(t, err)
	assert.Equal(t, StepTitle, r.StepID)
	assert.Equal(t, "entry already exists", r.Errors[ErrorBase])

	e.err = nil
	r, err = mgr.Step(ctx, r.FlowID, map[string]string{"title": "x"})
	require.NoError(t, err)
	assert.Equal(t, ResultCreateEntry, r.Type)
}

// Tests unknown flow.
func TestUnknownFlow(t *testing.T) {
	mgr, _ := getManager(nil)
	_, err := mgr.Step(context.Background(), "missing", nil)
	assert.IsType(t, &ErrFlowNotFound{}, err)
}

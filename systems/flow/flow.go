// Package flow implements miner setup wizard.
package flow

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/utils"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionTTL defines how long unfinished flow is kept.
const SessionTTL = 10 * time.Minute

// CreateEntryCallback persists and sets up a new entry.
type CreateEntryCallback func(*miner.ConfigEntry) error

// IManager defines setup flows manager.
type IManager interface {
	Start(ctx context.Context, input map[string]string) (*Result, error)
	Step(ctx context.Context, flowID string, input map[string]string) (*Result, error)
}

// Single setup session.
type session struct {
	sync.Mutex
	id       string
	step     string
	data     map[string]string
	miner    miner.IMiner
	title    string
	finished bool
}

// Flows manager.
type manager struct {
	logger   common.ILoggerProvider
	factory  providers.IMinerFactory
	onCreate CreateEntryCallback
	sessions *cache.Cache
}

// ConstructManager has data required for a new flows manager.
type ConstructManager struct {
	Logger   common.ILoggerProvider
	Factory  providers.IMinerFactory
	OnCreate CreateEntryCallback
}

// NewManager constructs a new flows manager.
func NewManager(ctor *ConstructManager) IManager {
	return &manager{
		logger:   ctor.Logger,
		factory:  ctor.Factory,
		onCreate: ctor.OnCreate,
		sessions: cache.New(SessionTTL, SessionTTL),
	}
}

// Start begins a new flow. Non-empty input is submitted to the user step right away.
func (m *manager) Start(ctx context.Context, input map[string]string) (*Result, error) {
	s := &session{
		id:   uuid.New().String(),
		step: StepUser,
		data: make(map[string]string),
	}

	m.sessions.SetDefault(s.id, s)
	m.logger.Debug("Started new setup flow", common.LogFlowToken, s.id)

	s.Lock()
	defer s.Unlock()
	return m.stepUser(ctx, s, input), nil
}

// Step submits input to the current step of the flow.
func (m *manager) Step(ctx context.Context, flowID string, input map[string]string) (*Result, error) {
	v, ok := m.sessions.Get(flowID)
	if !ok {
		return nil, &ErrFlowNotFound{ID: flowID}
	}

	s := v.(*session)
	s.Lock()
	defer s.Unlock()

	if s.finished {
		return nil, &ErrFlowFinished{ID: flowID}
	}

	m.sessions.SetDefault(s.id, s)
	m.logger.Debug("Processing setup flow step", common.LogFlowToken, s.id, common.LogStepToken, s.step)

	switch s.step {
	case StepLogin:
		return m.stepLogin(ctx, s, input), nil
	case StepTitle:
		return m.stepTitle(ctx, s, input), nil
	default:
		return m.stepUser(ctx, s, input), nil
	}
}

// Asks for miner IP and checks it's reachable.
func (m *manager) stepUser(ctx context.Context, s *session, input map[string]string) *Result {
	s.step = StepUser
	fields := userFields(input)
	if 0 == len(input) {
		return form(s, fields, nil)
	}

	data, errs := apply(fields, input)
	if len(errs) > 0 {
		return form(s, fields, errs)
	}

	ip := strings.TrimSpace(data[miner.ConfIP])
	var mn miner.IMiner
	if utils.IsValidHost(ip) {
		var err error
		mn, err = m.factory.GetMiner(ctx, ip)
		if err != nil {
			m.logger.Warn("Failed to connect to miner", common.LogFlowToken, s.id,
				common.LogDeviceHostToken, ip, common.LogErrorToken, err.Error())
		}
	}

	if nil == mn {
		return form(s, fields, map[string]string{ErrorBase: ErrorCannotConnect})
	}

	s.miner = mn
	s.data[miner.ConfIP] = ip
	return m.stepLogin(ctx, s, nil)
}

// Asks for credentials.
func (m *manager) stepLogin(ctx context.Context, s *session, input map[string]string) *Result {
	s.step = StepLogin
	fields := loginFields(s.miner, input)
	if 0 == len(input) {
		return form(s, fields, nil)
	}

	data, errs := apply(fields, input)
	if len(errs) > 0 {
		return form(s, fields, errs)
	}

	for k, v := range data {
		s.data[k] = v
	}

	return m.stepTitle(ctx, s, nil)
}

// Asks for title and creates entry.
func (m *manager) stepTitle(ctx context.Context, s *session, input map[string]string) *Result {
	s.step = StepTitle
	if "" == s.title {
		s.title = m.defaultTitle(ctx, s)
	}

	fields := titleFields(s.title, input)
	if 0 == len(input) {
		return form(s, fields, nil)
	}

	data, errs := apply(fields, input)
	if len(errs) > 0 {
		return form(s, fields, errs)
	}

	s.data[miner.ConfTitle] = data[miner.ConfTitle]
	entry := &miner.ConfigEntry{
		ID:    utils.NormalizeDeviceName(data[miner.ConfTitle]),
		Title: data[miner.ConfTitle],
		Data:  make(map[string]string, len(s.data)),
	}

	for k, v := range s.data {
		entry.Data[k] = v
	}

	if err := m.onCreate(entry); err != nil {
		m.logger.Error("Failed to create entry", err, common.LogFlowToken, s.id,
			common.LogEntryToken, entry.ID)
		return form(s, fields, map[string]string{ErrorBase: err.Error()})
	}

	s.finished = true
	m.sessions.Delete(s.id)
	m.logger.Info("Created new entry", common.LogFlowToken, s.id, common.LogEntryToken, entry.ID)
	return &Result{
		FlowID: s.id,
		Type:   ResultCreateEntry,
		Title:  entry.Title,
		Entry:  entry,
	}
}

// Returns miner hostname or a random name.
func (m *manager) defaultTitle(ctx context.Context, s *session) string {
	title, err := s.miner.Hostname(ctx)
	if err != nil || "" == strings.TrimSpace(title) {
		m.logger.Debug("Miner hostname is unknown, using random title", common.LogFlowToken, s.id)
		return utils.RandomTitle()
	}

	return title
}

func form(s *session, fields []*Field, errs map[string]string) *Result {
	return &Result{
		FlowID: s.id,
		Type:   ResultForm,
		StepID: s.step,
		Fields: fields,
		Errors: errs,
	}
}

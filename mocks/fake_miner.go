//go:build !release
// +build !release

package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/go-home-io/minerhub/plugins/miner"
)

// FakeMiner is a scripted miner.
type FakeMiner struct {
	sync.Mutex

	Addr     string
	MakeName string
	Name     string
	Boards   int
	Host     string
	HostErr  error

	RPCCreds *miner.Credentials
	WebCreds *miner.Credentials
	SSHCreds *miner.Credentials

	Creds     *miner.EntryCredentials
	DataCalls int

	data *miner.Data
	err  error
}

// IP returns miner address.
func (f *FakeMiner) IP() string { return f.Addr }

// Make returns miner make.
func (f *FakeMiner) Make() string { return f.MakeName }

// Model returns miner model.
func (f *FakeMiner) Model() string { return f.Name }

// RPC returns RPC interface credentials.
func (f *FakeMiner) RPC() *miner.Credentials { return f.RPCCreds }

// Web returns web interface credentials.
func (f *FakeMiner) Web() *miner.Credentials { return f.WebCreds }

// SSH returns SSH interface credentials.
func (f *FakeMiner) SSH() *miner.Credentials { return f.SSHCreds }

// ExpectedHashboards returns expected boards count.
func (f *FakeMiner) ExpectedHashboards() int { return f.Boards }

// SetCredentials records supplied credentials.
func (f *FakeMiner) SetCredentials(c *miner.EntryCredentials) {
	f.Lock()
	defer f.Unlock()
	f.Creds = c
}

// Hostname returns scripted hostname.
func (f *FakeMiner) Hostname(context.Context) (string, error) {
	return f.Host, f.HostErr
}

// Data returns scripted telemetry.
func (f *FakeMiner) Data(ctx context.Context) (*miner.Data, error) {
	f.Lock()
	defer f.Unlock()
	f.DataCalls++
	if nil != f.err {
		return nil, f.err
	}

	if nil == f.data {
		return nil, errors.New("no data")
	}

	return copyData(f.data), nil
}

// Returns deep copy of the snapshot so callers can mutate it.
func copyData(d *miner.Data) *miner.Data {
	res := *d
	res.MinerSensors = make(map[string]*float64, len(d.MinerSensors))
	for k, v := range d.MinerSensors {
		res.MinerSensors[k] = copyFloat(v)
	}

	res.BoardSensors = make(map[int]map[string]*float64, len(d.BoardSensors))
	for b, sensors := range d.BoardSensors {
		for k, v := range sensors {
			res.SetBoardSensor(b, k, copyFloat(v))
		}
	}

	return &res
}

// Copies optional value.
func copyFloat(v *float64) *float64 {
	if nil == v {
		return nil
	}

	return miner.Float(*v)
}

// SetData replaces scripted telemetry.
func (f *FakeMiner) SetData(data *miner.Data, err error) {
	f.Lock()
	defer f.Unlock()
	f.data = data
	f.err = err
}

// FakeNewMiner creates a new scripted miner with stock credentials.
func FakeNewMiner(ip string, boards int) *FakeMiner {
	rpcPwd := "admin"
	webPwd := "root"
	sshPwd := "admin"
	return &FakeMiner{
		Addr:     ip,
		MakeName: "AntMiner",
		Name:     "S9",
		Boards:   boards,
		Host:     "antminer",
		RPCCreds: &miner.Credentials{Password: &rpcPwd},
		WebCreds: &miner.Credentials{Username: "root", Password: &webPwd},
		SSHCreds: &miner.Credentials{Username: "root", Password: &sshPwd},
	}
}

// FakeNewMinerData creates a new telemetry snapshot.
func FakeNewMinerData(mac string, boards int) *miner.Data {
	d := miner.NewData()
	d.MAC = mac
	d.Make = "AntMiner"
	d.Model = "S9"
	d.FwVersion = "2019.01.01"
	d.Hostname = "antminer"
	d.ExpectedHashboards = boards
	d.MinerSensors[miner.SensorTemperature] = miner.Float(70)
	d.MinerSensors[miner.SensorHashrate] = miner.Float(13.5)
	d.MinerSensors[miner.SensorMinerConsumption] = miner.Float(1350)
	for i := 0; i < boards; i++ {
		d.SetBoardSensor(i, miner.SensorBoardTemperature, miner.Float(60))
		d.SetBoardSensor(i, miner.SensorChipTemperature, miner.Float(75))
		d.SetBoardSensor(i, miner.SensorBoardHashrate, miner.Float(4.5))
	}
	return d
}

type fakeMinerFactory struct {
	sync.Mutex
	miner miner.IMiner
	err   error
	calls int
}

func (f *fakeMinerFactory) GetMiner(ctx context.Context, ip string) (miner.IMiner, error) {
	f.Lock()
	defer f.Unlock()
	f.calls++
	if nil != f.err {
		return nil, f.err
	}

	if nil == f.miner {
		return nil, nil
	}

	return f.miner, nil
}

// Calls returns number of resolve attempts.
func (f *fakeMinerFactory) Calls() int {
	f.Lock()
	defer f.Unlock()
	return f.calls
}

// Set replaces resolved miner.
func (f *fakeMinerFactory) Set(m miner.IMiner, err error) {
	f.Lock()
	defer f.Unlock()
	f.miner = m
	f.err = err
}

// FakeNewMinerFactory creates a factory which always returns provided miner.
// Nil miner means unreachable host.
func FakeNewMinerFactory(m miner.IMiner, err error) *fakeMinerFactory {
	return &fakeMinerFactory{
		miner: m,
		err:   err,
	}
}

type fakeDiscovery struct {
	ips []string
}

func (f *fakeDiscovery) HasDevices(context.Context) bool {
	return len(f.ips) > 0
}

func (f *fakeDiscovery) Discover(context.Context) []string {
	return f.ips
}

// FakeNewDiscovery creates a discovery returning provided IPs.
func FakeNewDiscovery(ips ...string) *fakeDiscovery {
	return &fakeDiscovery{ips: ips}
}

type fakeEntryStore struct {
	sync.Mutex
	entries []*miner.ConfigEntry
	err     error
}

func (f *fakeEntryStore) Save(entry *miner.ConfigEntry) error {
	if nil != f.err {
		return f.err
	}

	f.Lock()
	defer f.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

// Saved returns all persisted entries.
func (f *fakeEntryStore) Saved() []*miner.ConfigEntry {
	f.Lock()
	defer f.Unlock()
	return append([]*miner.ConfigEntry{}, f.entries...)
}

// FakeNewEntryStore creates an in-memory entry store.
func FakeNewEntryStore(err error) *fakeEntryStore {
	return &fakeEntryStore{err: err}
}

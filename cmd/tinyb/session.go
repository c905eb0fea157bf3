package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tinygo.org/x/tinyb"
	"tinygo.org/x/tinyb/internal/config"
)

// session is the state shared by every subcommand: an open manager and the
// adapter devices are looked up on.
type session struct {
	cfg     *config.Config
	log     *logrus.Logger
	manager *tinyb.Manager
	adapter *tinyb.Adapter
}

// openSession configures logging, opens the manager and selects the
// configured adapter.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, logger, err := configureLogger(cmd)
	if err != nil {
		return nil, err
	}

	// Arguments are validated from here on
	cmd.SilenceUsage = true

	m, err := tinyb.Open()
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, log: logger, manager: m}

	if cfg.Adapter != "" {
		s.adapter, err = selectAdapter(m, cfg.Adapter)
		if err != nil {
			m.Close()
			return nil, err
		}
	}
	return s, nil
}

// selectAdapter returns the adapter with the given id or address.
func selectAdapter(m *tinyb.Manager, want string) (*tinyb.Adapter, error) {
	adapters, err := m.Adapters()
	if err != nil {
		return nil, err
	}
	var found *tinyb.Adapter
	for _, a := range adapters {
		if found == nil && adapterMatches(a, want) {
			found = a
			continue
		}
		a.Delete()
	}
	if found == nil {
		return nil, fmt.Errorf("adapter %s not found", want)
	}
	return found, nil
}

func adapterMatches(a *tinyb.Adapter, want string) bool {
	if id, err := a.ID(); err == nil && id == want {
		return true
	}
	addr, err := a.Address()
	return err == nil && strings.EqualFold(addr, want)
}

func (s *session) Close() {
	if s.adapter != nil {
		s.adapter.Delete()
	}
	if err := s.manager.Close(); err != nil {
		s.log.WithError(err).Warn("closing manager")
	}
}

// devices returns the devices of the selected adapter, or of every adapter
// when none was selected.
func (s *session) devices() ([]*tinyb.Device, error) {
	if s.adapter != nil {
		return s.adapter.Devices()
	}
	return s.manager.Devices()
}

// startDiscovery starts discovery when the configuration asks for it. The
// returned function stops it again.
func (s *session) startDiscovery() func() {
	if !s.cfg.Discover {
		return func() {}
	}
	a := s.adapter
	if a == nil {
		var err error
		if a, err = s.manager.DefaultAdapter(); err != nil {
			s.log.WithError(err).Warn("no adapter for discovery")
			return func() {}
		}
	} else {
		var err error
		if a, err = a.Clone(); err != nil {
			s.log.WithError(err).Warn("cloning adapter")
			return func() {}
		}
	}
	if _, err := a.StartDiscovery(); err != nil {
		s.log.WithError(err).Warn("starting discovery")
		a.Delete()
		return func() {}
	}
	return func() {
		if _, err := a.StopDiscovery(); err != nil {
			s.log.WithError(err).Debug("stopping discovery")
		}
		a.Delete()
	}
}

// withDevice looks up the device with the given address, runs fn on it and
// releases everything afterwards.
func withDevice(cmd *cobra.Command, address string, fn func(ctx context.Context, s *session, d *tinyb.Device) error) error {
	mac, err := tinyb.ParseMAC(address)
	if err != nil {
		return fmt.Errorf("invalid device address %q", address)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	stopDiscovery := s.startDiscovery()
	findCtx, cancel := context.WithTimeout(ctx, s.cfg.FindTimeout)
	s.log.WithField("address", mac.String()).Debug("looking up device")
	d, err := s.manager.Find(findCtx, "", mac.String(), s.adapter)
	cancel()
	stopDiscovery()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("device %s not found within %s", mac, s.cfg.FindTimeout)
	}
	if err != nil {
		return err
	}
	defer d.Delete()

	return fn(ctx, s, d)
}

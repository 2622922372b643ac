package main

import (
	"github.com/go-home-io/minerhub/server"
	"github.com/go-home-io/minerhub/settings"
	"github.com/jessevdk/go-flags"
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && flags.ErrHelp == fe.Type {
			return
		}

		panic(err)
	}

	s := settings.Load(options)
	s.SystemLogger().Info("Starting minerhub server")

	srv, err := server.NewServer(s)
	if err != nil {
		s.SystemLogger().Fatal("Failed to start minerhub server", err)
	}

	srv.Start()
}

// Package config loads the tour's configuration.
//
// Configuration comes from an optional tour.yaml, then TOUR_* environment
// variables, then command-line flags, each overriding the last. Every
// field has a default, so an empty file is valid.
//
// # Configuration File Structure
//
//	server:
//	  address: ":8080"
//	  root: form
//	  title: Tour
//	  max_sessions: 1000
//	  debug: false
//	session:
//	  read_timeout: 60s
//	  idle_timeout: 5m
//	  heartbeat_interval: 30s
//	  max_event_queue: 256
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: tour
//	tracing:
//	  enabled: false
//	publish:
//	  bucket: tour-snapshots
//	  prefix: v1
//	  region: us-east-1
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ApplyEnv(os.Getenv); err != nil {
//	    return err
//	}
//	srv := server.New(cfg.ServerConfig())
package config

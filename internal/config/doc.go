// Package config provides configuration parsing for the reconcile CLI.
//
// The configuration is stored in reconcile.json. Every field is optional;
// missing values fall back to the defaults returned by New.
//
// # Configuration File Structure
//
//	{
//	  "debug": false,
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "scheduler": {
//	    "order": "fifo"
//	  },
//	  "cache": {
//	    "max": 0
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "reconcile"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "github.com/vango-dev/reconcile"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFile("reconcile.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := slog.New(cfg.Handler(os.Stderr))
package config

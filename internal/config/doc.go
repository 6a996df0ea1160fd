// Package config loads ripple project configuration.
//
// The configuration lives in ripple.yaml (or ripple.yml / ripple.json) at the
// project root. Every field is optional:
//
//	preview:
//	  host: localhost
//	  port: 3000
//	  title: Ripple preview
//	render:
//	  pretty: true
//	  nodeIDs: false
//	  route: /todos
//	log:
//	  level: debug   # debug, info, warn, error
//	  format: text   # text or json
//
// Unknown keys are rejected so typos surface as E101 parse errors with the
// offending line.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.PrintError(os.Stderr, err)
//	    os.Exit(1)
//	}
//	fmt.Println("Preview:", cfg.Address())
package config

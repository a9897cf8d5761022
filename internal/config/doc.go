// Package config loads route tables.
//
// A route table declares the path parameters of an application and the
// paths mapped to handler ids. It is stored as civilian.json at the project
// root; civilian.yaml, civilian.yml and civilian.toml are read as well.
//
// # Route Table Structure
//
//	{
//	  "appPath": "/shop",
//	  "ignoreExtension": true,
//	  "params": [
//	    {"name": "customerId", "convert": "int"},
//	    {"name": "idparam", "kind": "preceded", "prefix": "id",
//	     "inner": {"convert": "int"}},
//	    {"name": "day", "kind": "ymd"},
//	    {"name": "tail", "kind": "multi", "min": 1}
//	  ],
//	  "routes": [
//	    {"path": "/customers", "handler": "customers"},
//	    {"path": "/customers/{customerId}/details", "handler": "details"}
//	  ]
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tree, err := cfg.BuildTree(slog.Default())
package config

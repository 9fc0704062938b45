//go:build statictoml

package config

import "github.com/vovanwin/statictoml"

// Example application settings.
var Example = statictoml.Static("configs/example.toml")

package app

import (
	"github.com/vk/scopedown/internal/registry"
	"github.com/vk/scopedown/modules/httpclient"
	"github.com/vk/scopedown/modules/socketio"
	"github.com/vk/scopedown/modules/webdriver"
)

// coreModules is the definitive list of all modules that are compiled into
// the scopedown binary.
var coreModules = []registry.Module{
	&httpclient.Module{},
	&webdriver.Module{},
	&socketio.Module{},
}

package app

import (
	"github.com/vk/flowgridgo/internal/registry"
	"github.com/vk/flowgridgo/modules/concat"
	"github.com/vk/flowgridgo/modules/identity"
	"github.com/vk/flowgridgo/modules/scale"
)

// coreModules is the definitive list of all processor modules compiled into
// the flowgridgo binary.
var coreModules = []registry.Module{
	&identity.Module{},
	&concat.Module{},
	&scale.Module{},
}

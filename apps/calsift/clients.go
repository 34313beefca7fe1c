package calsift

import (
	"calsift.app/apps/calsift/pkg/discover"
)

type Clients struct {
	Discover discover.Client
}

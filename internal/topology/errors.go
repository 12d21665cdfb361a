package topology

import "errors"

var (
	ErrInvalidTopologyRequest = errors.New("invalid topology request")
	ErrDuplicateSubnetName    = errors.New("duplicate subnet name")
)

package pingsweep

import (
	"fmt"
	"iter"
	"net"
	"strconv"
	"strings"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/common"
)

// RangeKind identifies which form a RangeSpec was built from
type RangeKind int

const (
	RangeOctets RangeKind = iota
	RangeCIDR
)

// RangeSpec is a validated description of the IPv4 addresses to sweep.
// It is immutable once built.
type RangeSpec struct {
	kind   RangeKind
	source string
	prefix int
	first  uint32
	last   uint32
}

// ParseRangeSpec builds a RangeSpec from either a CIDR or a base/start/end triple.
// Supplying both forms or neither is a configuration error.
func ParseRangeSpec(cidr, base string, start, end int) (*RangeSpec, error) {
	cidr = strings.TrimSpace(cidr)
	base = strings.TrimSpace(base)

	switch {
	case cidr != "" && base != "":
		return nil, configErrorf("range", "cidr and base are mutually exclusive")
	case cidr != "":
		return NewCIDRRange(cidr)
	case base != "":
		return NewOctetRange(base, start, end)
	default:
		return nil, configErrorf("range", "either cidr or base must be specified")
	}
}

// NewOctetRange returns the range base.start .. base.end
func NewOctetRange(base string, start, end int) (*RangeSpec, error) {
	prefix, err := parseBase(base)
	if err != nil {
		return nil, err
	}
	if start < 1 || start > 255 {
		return nil, configErrorf("start", "start %d must be between 1 and 255", start)
	}
	if end < 1 || end > 255 {
		return nil, configErrorf("end", "end %d must be between 1 and 255", end)
	}
	if end < start {
		return nil, configErrorf("end", "end %d cannot be less than start %d", end, start)
	}

	return &RangeSpec{
		kind:   RangeOctets,
		source: fmt.Sprintf("%s.%d-%d", strings.TrimSpace(base), start, end),
		prefix: 24,
		first:  prefix | uint32(start),
		last:   prefix | uint32(end),
	}, nil
}

// parseBase validates a three octet prefix such as "192.168.1" and returns it
// shifted into the top 24 bits.
func parseBase(base string) (uint32, error) {
	parts := strings.Split(strings.TrimSpace(base), ".")
	if len(parts) != 3 {
		return 0, configErrorf("base", "%q must have exactly three octets", base)
	}

	var value uint32
	for _, part := range parts {
		if part == "" || len(part) > 3 || strings.TrimLeft(part, "0123456789") != "" {
			return 0, configErrorf("base", "%q contains an invalid octet %q", base, part)
		}
		octet, err := strconv.Atoi(part)
		if err != nil || octet > 255 {
			return 0, configErrorf("base", "%q contains an invalid octet %q", base, part)
		}
		value = value<<8 | uint32(octet)
	}
	return value << 8, nil
}

// NewCIDRRange returns the usable addresses of an IPv4 CIDR block.
// Prefixes up to /30 exclude the network and broadcast addresses; /31 and /32
// keep every address since they have no distinct broadcast.
func NewCIDRRange(cidr string) (*RangeSpec, error) {
	cidr = strings.TrimSpace(cidr)
	addrPart, prefixPart, found := strings.Cut(cidr, "/")
	if !found {
		return nil, configErrorf("cidr", "%q is not in a.b.c.d/n notation", cidr)
	}

	addr, ok := common.ParseIPv4(addrPart)
	if !ok {
		return nil, configErrorf("cidr", "%q is not a valid IPv4 address", addrPart)
	}

	if prefixPart == "" || strings.TrimLeft(prefixPart, "0123456789") != "" {
		return nil, configErrorf("cidr", "%q is not a valid prefix length", prefixPart)
	}
	prefix, err := strconv.Atoi(prefixPart)
	if err != nil || prefix < 0 || prefix > 32 {
		return nil, configErrorf("cidr", "prefix length %q must be between 0 and 32", prefixPart)
	}

	// shifting a uint32 by 32 yields 0, which is the /0 mask
	mask := ^uint32(0) << (32 - prefix)
	network := addr & mask
	broadcast := network | ^mask

	first, last := network, broadcast
	if prefix <= 30 {
		first, last = network+1, broadcast-1
	}

	return &RangeSpec{
		kind:   RangeCIDR,
		source: cidr,
		prefix: prefix,
		first:  first,
		last:   last,
	}, nil
}

// Kind returns the form the range was built from
func (r *RangeSpec) Kind() RangeKind {
	return r.kind
}

// String returns the range as it was given
func (r *RangeSpec) String() string {
	return r.source
}

// First returns the lowest address of the range
func (r *RangeSpec) First() string {
	return common.FormatIPv4(r.first)
}

// Last returns the highest address of the range
func (r *RangeSpec) Last() string {
	return common.FormatIPv4(r.last)
}

// Network returns the enclosing network of the range
func (r *RangeSpec) Network() *net.IPNet {
	mask := net.CIDRMask(r.prefix, 32)
	return &net.IPNet{IP: common.Uint32ToIPv4(r.first).Mask(mask), Mask: mask}
}

// Len returns the number of addresses in the range
func (r *RangeSpec) Len() uint64 {
	return uint64(r.last) - uint64(r.first) + 1
}

// All yields every address of the range in ascending order. Each call
// starts a fresh enumeration.
func (r *RangeSpec) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for u := r.first; ; u++ {
			if !yield(common.FormatIPv4(u)) {
				return
			}
			if u == r.last {
				return
			}
		}
	}
}

// Slice expands the whole range. Intended for small ranges.
func (r *RangeSpec) Slice() []string {
	targets := make([]string, 0, r.Len())
	for ip := range r.All() {
		targets = append(targets, ip)
	}
	return targets
}

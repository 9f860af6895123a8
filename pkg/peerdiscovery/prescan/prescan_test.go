package prescan

import (
	"net"
	"slices"
	"testing"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/common"
)

func TestSelectIPs(t *testing.T) {
	tests := []struct {
		name      string
		cidr      string
		ratio     float64
		wantCount int
		wantErr   bool
	}{
		{"25% of /24", "192.168.1.0/24", 0.25, 64, false},
		{"100% of /24", "192.168.1.0/24", 1.0, 254, false},
		{"zero ratio", "192.168.1.0/24", 0, 0, false},
		{"ratio above one is clamped", "10.0.0.0/24", 2.0, 254, false},
		{"tiny ratio keeps one", "10.0.0.0/24", 0.0001, 1, false},
		{"/30", "10.0.0.0/30", 1.0, 2, false},
		{"/32", "10.0.0.5/32", 1.0, 1, false},
		{"invalid CIDR", "not-a-cidr", 0.5, 0, true},
		{"IPv6", "2001:db8::/64", 0.5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ips, err := SelectIPs(tt.cidr, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SelectIPs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(ips) != tt.wantCount {
				t.Errorf("SelectIPs() returned %d IPs, want %d", len(ips), tt.wantCount)
			}
			if !slices.IsSortedFunc(ips, common.CompareIPv4) {
				t.Errorf("SelectIPs() result is not in ascending order: %v", ips)
			}
		})
	}
}

func TestSelectIPsKeepsGateways(t *testing.T) {
	ips, err := SelectIPs("192.168.1.0/24", 0.01)
	if err != nil {
		t.Fatalf("SelectIPs() error = %v", err)
	}
	// ceil(254 * 0.01) = 3
	want := []string{"192.168.1.1", "192.168.1.2", "192.168.1.254"}
	if !slices.Equal(ips, want) {
		t.Errorf("SelectIPs() = %v, want %v", ips, want)
	}
}

func TestCalculatePriority(t *testing.T) {
	_, network, _ := net.ParseCIDR("192.168.1.0/24")

	tests := []struct {
		ip   string
		want int
	}{
		{"192.168.1.0", PriorityTier7},
		{"192.168.1.1", PriorityTier1},
		{"192.168.1.254", PriorityTier1},
		{"192.168.1.3", PriorityTier2},
		{"192.168.1.252", PriorityTier2},
		{"192.168.1.8", PriorityTier3},
		{"192.168.1.100", PriorityTier4},
		{"192.168.1.75", PriorityTier5},
		{"192.168.1.30", PriorityTier6},
		{"192.168.1.230", PriorityTier6},
		{"192.168.1.255", PriorityTier7},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := CalculatePriority(net.ParseIP(tt.ip), network); got != tt.want {
				t.Errorf("CalculatePriority(%s) = %d, want %d", tt.ip, got, tt.want)
			}
		})
	}
}

func TestCalculatePriorityWideNetwork(t *testing.T) {
	_, network, _ := net.ParseCIDR("10.0.0.0/16")

	// .0 and .255 inside a /16 are ordinary hosts, but still rank last by octet
	if got := CalculatePriority(net.ParseIP("10.0.5.1"), network); got != PriorityTier1 {
		t.Errorf("CalculatePriority(10.0.5.1) = %d, want %d", got, PriorityTier1)
	}
	if got := CalculatePriority(net.ParseIP("10.0.255.255"), network); got != PriorityTier7 {
		t.Errorf("CalculatePriority(10.0.255.255) = %d, want %d", got, PriorityTier7)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	_, network, _ := net.ParseCIDR("192.168.1.0/24")
	targets := []string{"192.168.1.30", "192.168.1.254", "192.168.1.75", "192.168.1.1"}

	got := Filter(targets, network, 0.5)
	want := []string{"192.168.1.254", "192.168.1.1"}
	if !slices.Equal(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilterEdgeCases(t *testing.T) {
	_, network, _ := net.ParseCIDR("192.168.1.0/24")

	if got := Filter(nil, network, 0.5); len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}
	if got := Filter([]string{"192.168.1.9"}, network, 0.01); len(got) != 1 {
		t.Errorf("Filter() with tiny ratio = %v, want one target", got)
	}
	if got := Filter([]string{"192.168.1.9", "bogus"}, network, 1); len(got) != 2 {
		t.Errorf("Filter() with full ratio = %v, want every target", got)
	}
	if got := FilterCount([]string{"bogus", "192.168.1.9"}, network, 1); !slices.Equal(got, []string{"192.168.1.9"}) {
		t.Errorf("FilterCount() = %v, want only the valid address", got)
	}
}

func TestOctetPriorityTable(t *testing.T) {
	counts := map[int]int{}
	for _, priority := range octetPriority {
		counts[priority]++
	}

	want := map[int]int{
		PriorityTier1: 2,
		PriorityTier2: 8,
		PriorityTier3: 5,
		PriorityTier4: 3,
		PriorityTier5: 148,
		PriorityTier6: 88,
		PriorityTier7: 2,
	}
	for priority, n := range want {
		if counts[priority] != n {
			t.Errorf("octets with priority %d = %d, want %d", priority, counts[priority], n)
		}
	}
}

package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinCyclesThroughServers(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8081", "http://b:8081", "http://c:8081"})

	assert.Equal(t, "http://a:8081", rr.Next())
	assert.Equal(t, "http://b:8081", rr.Next())
	assert.Equal(t, "http://c:8081", rr.Next())
	assert.Equal(t, "http://a:8081", rr.Next())
}

func TestRoundRobinSingleServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://solo:8080"})

	assert.Equal(t, "http://solo:8080", rr.Next())
	assert.Equal(t, "http://solo:8080", rr.Next())
}

func TestRoundRobinEmpty(t *testing.T) {
	rr := NewRoundRobin(nil)

	assert.Equal(t, "", rr.Next())
}

func TestGetServersReturnsCopy(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8081", "http://b:8081"})

	servers := rr.GetServers()
	servers[0] = "mutated"

	assert.Equal(t, "http://a:8081", rr.Next())
}

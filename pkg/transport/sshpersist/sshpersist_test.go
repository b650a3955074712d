package sshpersist

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/stretchr/testify/assert"
)

// TestGobRoundTripDropsLiveClient exercises the serialization contract:
// only ConnectionParameters survive, and the decoded Transport has no
// live client (it would reconnect lazily on next use).
func TestGobRoundTripDropsLiveClient(t *testing.T) {
	original := New(job.ConnectionParameters{Host: "cluster.example.org", User: "alice"})

	var buf bytes.Buffer
	assert.NoError(t, gob.NewEncoder(&buf).Encode(original))

	var decoded Transport
	assert.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))

	assert.Equal(t, "cluster.example.org", decoded.params.Host)
	assert.Equal(t, "alice", decoded.params.User)
	assert.Nil(t, decoded.client)
	assert.Nil(t, decoded.sftp)
}

func TestHostPort(t *testing.T) {
	assert.Equal(t, "example.org:22", hostPort("example.org"))
	assert.Equal(t, "example.org:2222", hostPort("example.org:2222"))
}

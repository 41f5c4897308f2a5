package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNilClientIsAlwaysEmpty(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)

	var dst map[string]string
	c.SetJSON(ctx, "k", map[string]string{"a": "b"}, time.Minute)
	assert.False(t, c.GetJSON(ctx, "k", &dst))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedisBehavesLikeMiss(t *testing.T) {
	// nothing listens on port 1; every command fails fast
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	c := NewFromRedis(rdb, "test")
	defer c.Close()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, ContactsKey, []byte("[]"), time.Minute))
	data, err := c.Get(ctx, ContactsKey)
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, ContactsKey, GuestsKey(1)))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "guests:user:42", GuestsKey(42))

	c := &Client{namespace: "rsvp"}
	assert.Equal(t, "rsvp:contacts", c.key(ContactsKey))
	assert.Equal(t, "contacts", (&Client{}).key(ContactsKey))
}

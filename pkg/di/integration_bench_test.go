package di

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/AnkaaDesign/apiclient/pkg/testsupport"
	"github.com/AnkaaDesign/apiclient/resource"
	"github.com/AnkaaDesign/apiclient/transport"
)

func TestConcurrentAccessCoalesces(t *testing.T) {
	api := testsupport.NewFakeAPI(t)
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("d%d", i)
		api.Handle(http.MethodGet, "/devices/"+id, testsupport.OK(device{ID: id, Name: "device " + id}))
	}

	c := newTestContainer(t, Options{Transport: transport.Config{BaseURL: api.URL()}})
	devices := newDeviceResource(t, c, time.Minute)
	ctx := context.Background()

	const workers = 40
	const opsPerWorker = 25

	var wg sync.WaitGroup
	failures := make(chan error, workers*opsPerWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for op := 0; op < opsPerWorker; op++ {
				id := fmt.Sprintf("d%d", (worker+op)%20)
				if _, err := devices.Get(ctx, id, resource.GetParams{}); err != nil {
					failures <- fmt.Errorf("worker %d get %s: %w", worker, id, err)
				}
			}
		}(w)
	}
	wg.Wait()
	close(failures)

	for err := range failures {
		t.Error(err)
	}

	total := 0
	for i := 0; i < 20; i++ {
		total += api.CallCount(http.MethodGet, fmt.Sprintf("/devices/d%d", i))
	}
	if total != 20 {
		t.Errorf("backend calls = %d, want 20 (one per distinct id)", total)
	}
}

func TestConcurrentReadWrite(t *testing.T) {
	api := testsupport.NewFakeAPI(t)
	api.Handle(http.MethodGet, "/devices/d1", testsupport.OK(device{ID: "d1", Name: "press"}))
	api.Handle(http.MethodPut, "/devices/d1", testsupport.OK(device{ID: "d1", Name: "press"}))

	c := newTestContainer(t, Options{Transport: transport.Config{BaseURL: api.URL()}})
	devices := newDeviceResource(t, c, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	failures := make(chan error, 200)

	for w := 0; w < 10; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := devices.Get(ctx, "d1", resource.GetParams{}); err != nil {
					failures <- fmt.Errorf("get: %w", err)
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				if _, err := devices.Update(ctx, "d1", deviceUpdate{Name: "press"}); err != nil {
					failures <- fmt.Errorf("update: %w", err)
				}
			}
		}()
	}
	wg.Wait()
	close(failures)

	for err := range failures {
		t.Error(err)
	}

	reads := api.CallCount(http.MethodGet, "/devices/d1")
	writes := api.CallCount(http.MethodPut, "/devices/d1")
	if writes != 50 {
		t.Errorf("backend writes = %d, want 50 (writes are never cached)", writes)
	}
	if reads > 51 {
		t.Errorf("backend reads = %d, want at most one per invalidation", reads)
	}
}

func BenchmarkKeySerialization(b *testing.B) {
	api := testsupport.NewFakeAPI(b)
	c, err := NewContainer(Options{Transport: transport.Config{BaseURL: api.URL()}})
	if err != nil {
		b.Fatalf("NewContainer() error = %v", err)
	}
	defer c.Close()
	keys := c.KeySerializer()

	cases := []struct {
		name string
		args []any
	}{
		{name: "id_only", args: []any{"d1"}},
		{name: "list_params", args: []any{resource.ListParams{Page: 2, Limit: 50, SearchingFor: "press"}.Normalize()}},
		{name: "mixed", args: []any{"d1", []string{"a", "b"}, map[string]int{"limit": 10}}},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = keys.SerializeKey("devices", "get", bc.args...)
			}
		})
	}
}

func BenchmarkCachedGet(b *testing.B) {
	api := testsupport.NewFakeAPI(b)
	api.Handle(http.MethodGet, "/devices/d1", testsupport.OK(device{ID: "d1", Name: "press"}))

	c, err := NewContainer(Options{Transport: transport.Config{BaseURL: api.URL()}})
	if err != nil {
		b.Fatalf("NewContainer() error = %v", err)
	}
	defer c.Close()

	devices, err := NewCachedResource[device, deviceCreate, deviceUpdate](c, "devices", time.Minute)
	if err != nil {
		b.Fatalf("NewCachedResource() error = %v", err)
	}
	ctx := context.Background()

	if _, err := devices.Get(ctx, "d1", resource.GetParams{}); err != nil {
		b.Fatalf("warmup Get() error = %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := devices.Get(ctx, "d1", resource.GetParams{}); err != nil {
			b.Fatalf("Get() error = %v", err)
		}
	}
}

func BenchmarkConcurrentCachedGet(b *testing.B) {
	api := testsupport.NewFakeAPI(b)
	api.Handle(http.MethodGet, "/devices/d1", testsupport.OK(device{ID: "d1", Name: "press"}))

	c, err := NewContainer(Options{Transport: transport.Config{BaseURL: api.URL()}})
	if err != nil {
		b.Fatalf("NewContainer() error = %v", err)
	}
	defer c.Close()

	devices, err := NewCachedResource[device, deviceCreate, deviceUpdate](c, "devices", time.Minute)
	if err != nil {
		b.Fatalf("NewCachedResource() error = %v", err)
	}
	ctx := context.Background()

	if _, err := devices.Get(ctx, "d1", resource.GetParams{}); err != nil {
		b.Fatalf("warmup Get() error = %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := devices.Get(ctx, "d1", resource.GetParams{}); err != nil {
				b.Errorf("Get() error = %v", err)
				return
			}
		}
	})
}

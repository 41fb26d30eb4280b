// Command bench runs a synthetic Zipf-skewed workload against a chosen
// eviction engine and reports throughput and hit rate. Optional pprof
// and Prometheus endpoints expose the run while it is in flight.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/dgryski/go-farm"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/evictcache/cache"
	pmet "github.com/IvanBrykalov/evictcache/metrics/prom"
	"github.com/IvanBrykalov/evictcache/policy"
	"github.com/IvanBrykalov/evictcache/policy/arc"
	"github.com/IvanBrykalov/evictcache/policy/lfu"
	"github.com/IvanBrykalov/evictcache/policy/lru"
	"github.com/IvanBrykalov/evictcache/policy/lruk"
)

func main() {
	var (
		capacity = flag.Int("cap", 100_000, "total cache capacity (entries)")
		shards   = flag.Int("shards", 0, "number of shards (0=auto)")
		engine   = flag.String("engine", "lru", "eviction engine: lru | lfu | lfu-aging | lru-k | arc")

		agingLimit = flag.Float64("aging_limit", lfu.DefaultAgingLimit, "lfu-aging: average-frequency limit")
		lrukK      = flag.Int("lruk_k", 2, "lru-k: references required for admission")
		lrukHist   = flag.Int("lruk_history", 0, "lru-k: per-shard history capacity (0 = per-shard main capacity)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		hasher      = flag.String("hash", "xxhash", "shard-routing hash: xxhash | farm")
		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	opt := cache.Options[string, string]{
		Capacity: *capacity,
		Shards:   *shards,
		Engine:   engineFactory(*engine, *agingLimit, *lrukK, *lrukHist),
	}
	if *hasher == "farm" {
		opt.Hasher = func(k string) uint64 { return farm.Fingerprint64([]byte(k)) }
	}
	if *metricsAddr != "" {
		opt.Metrics = pmet.New(nil, "evictcache", "bench", nil)
	}

	c, err := cache.New(opt)
	if err != nil {
		log.Fatalf("building cache: %v", err)
	}

	if *metricsAddr != "" {
		pmet.RegisterSizeGauge(nil, "evictcache", "bench", nil, c.Len)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Put(k, "v"+strconv.Itoa(i))
	}

	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	var reads, writes, hits uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var g errgroup.Group
	for w := 0; w < workersN; w++ {
		w := w
		g.Go(func() error {
			// Each worker gets its own RNG + Zipf (rand.Rand is not
			// goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(w)*9973))
			localZipf := rand.NewZipf(localR, *zipfS, *zipfV, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for ctx.Err() == nil {
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					if _, ok := c.Get(keyByZipf()); ok {
						atomic.AddUint64(&hits, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					c.Put(keyByZipf(), "v"+strconv.Itoa(localR.Int()))
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)

	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	ops := readsN + writesN

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("engine=%s cap=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		*engine, *capacity, c.NumShards(), workersN, *keys, elapsed.Round(time.Millisecond), seedBase)
	fmt.Printf("ops=%s (%s ops/s)  reads=%s  writes=%s\n",
		humanize.Comma(int64(ops)),
		humanize.Comma(int64(float64(ops)/elapsed.Seconds())),
		humanize.Comma(int64(readsN)),
		humanize.Comma(int64(writesN)))
	fmt.Printf("hits=%s  hit-rate=%.2f%%  Len()=%s\n",
		humanize.Comma(int64(hitsN)), hitRate, humanize.Comma(int64(c.Len())))
}

// engineFactory maps the -engine flag to a per-shard engine constructor.
func engineFactory(name string, agingLimit float64, k, hist int) func(int) (policy.Policy[string, string], error) {
	switch name {
	case "lru":
		return func(capacity int) (policy.Policy[string, string], error) {
			return lru.New[string, string](capacity)
		}
	case "lfu":
		return func(capacity int) (policy.Policy[string, string], error) {
			return lfu.New[string, string](capacity)
		}
	case "lfu-aging":
		return func(capacity int) (policy.Policy[string, string], error) {
			return lfu.NewAging[string, string](capacity, agingLimit)
		}
	case "lru-k":
		return func(capacity int) (policy.Policy[string, string], error) {
			h := hist
			if h <= 0 {
				h = capacity
			}
			return lruk.New[string, string](k, h, capacity)
		}
	case "arc":
		return func(capacity int) (policy.Policy[string, string], error) {
			return arc.New[string, string](capacity)
		}
	default:
		log.Fatalf("unknown engine: %q (use lru, lfu, lfu-aging, lru-k or arc)", name)
		return nil
	}
}

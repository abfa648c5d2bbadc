// main.go - pool daemon entry point.
//
// Wires the ambient stack (config, logger, health, metrics, rate
// limiter) around the internal/pool core and runs a short
// initialize-then-deposit demonstration sequence, the way the teacher's
// own auctiond orchestrated a fixed-size scenario against its protocol
// core. A production deployment replaces InMemoryVault and
// UUIDAddressDeriver with adapters onto the real host runtime and drives
// Append/Spend from relayer-submitted requests instead of from main.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"shieldedpool/internal/pool"
)

func main() {
	configPath := flag.String("config", "poold.json", "path to daemon configuration file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("load config: %v\n", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("invalid config: %v\n", err)
		return
	}

	logFile := ""
	if cfg.LogFile != "" {
		logFile = cfg.LogFile
	}
	auditFile := ""
	if cfg.EnableAudit {
		auditFile = cfg.AuditLogPath
	}
	logger, err := NewLogger(cfg.LogLevel, logFile, auditFile)
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		return
	}
	defer logger.Close()

	metrics := NewMetricsCollector()
	health := NewHealthChecker("poold-0.1")
	rateLimiter := NewRelayerRateLimiter(cfg.RelayerBurst, int(cfg.RelayerRatePerSecond), time.Second)

	deriver := UUIDAddressDeriver{}
	ownerSeed := []byte("poold-default-owner")
	tokenIdentitySeed := []byte("poold-default-token")
	owner, err := deriver.Derive("owner", ownerSeed)
	if err != nil {
		logger.Fatal("derive owner address: %v", err)
	}
	token, err := deriver.Derive("token", tokenIdentitySeed)
	if err != nil {
		logger.Fatal("derive token address: %v", err)
	}

	vault := NewInMemoryVault()
	maxDeposit, err := cfg.MaxDepositAmount()
	if err != nil {
		logger.Fatal("parse max_deposit: %v", err)
	}

	sink := &DaemonSink{Logger: logger, Metrics: metrics}

	registry := pool.NewPoolRegistry()
	p, err := registry.Open(pool.InitializeParams{
		Owner:       owner,
		Token:       token,
		TreeDepth:   cfg.TreeDepth,
		HistorySize: cfg.HistorySize,
		MaxDeposit:  maxDeposit,
		Vault:       vault,
		Sink:        sink,
		Now:         time.Now().Unix(),
	})
	if err != nil {
		logger.Fatal("initialize pool: %v", err)
	}
	if _, err := registry.Open(pool.InitializeParams{
		Owner: owner, Token: token, TreeDepth: cfg.TreeDepth,
		HistorySize: cfg.HistorySize, MaxDeposit: maxDeposit, Vault: vault,
	}); err != nil {
		logger.Info("re-initializing %x rejected as expected: %v", token, err)
	}

	health.RegisterPoolComponents(vault.Ping, func() bool {
		return p.Snapshot().VKConfigured
	})

	logger.Info("pool daemon started: tree_depth=%d history_size=%d max_deposit=%d", cfg.TreeDepth, cfg.HistorySize, maxDeposit)

	runDepositDemo(p, logger, metrics)
	runSpendDemo(p, logger, metrics, rateLimiter)

	snap := p.Snapshot()
	metrics.RecordPoolState(snap.NullifierSetSize, snap.NextLeafIndex)
	report := health.CheckHealth()
	logger.Info("health: %s, uptime=%s", report.OverallStatus, report.Uptime)
	logger.Info("metrics summary: %+v", metrics.GetMetricsSummary())
}

// runDepositDemo exercises Append once against a commitment the daemon
// has no prover for; a real relayer-facing transport would receive this
// commitment from a client's note-creation step instead of hardcoding it.
func runDepositDemo(p *pool.Pool, logger *Logger, metrics *MetricsCollector) {
	caller := pool.Address{0x01}
	var commitment pool.Bytes32
	commitment[0] = 0x01
	commitment[31] = 0x01

	_, err := p.Append(context.Background(), caller, 1_000_000, commitment, time.Now().Unix())
	if err != nil {
		logger.Error("demo deposit failed: %v", err)
		metrics.RecordRejectedDeposit(err.Error())
		return
	}
	logger.Info("demo deposit accepted")
}

// runSpendDemo exercises Spend's gates through a relayer's rate limiter.
// With no verification key configured yet, this is expected to fail at
// the VKNotConfigured gate, well before any proof bytes would matter;
// it demonstrates the rejection-and-metrics path, not a working redeem.
func runSpendDemo(p *pool.Pool, logger *Logger, metrics *MetricsCollector, limiter *RelayerRateLimiter) {
	const relayerID = "demo-relayer"
	if !limiter.Allow(relayerID, SpendRequestCost) {
		logger.Warn("relayer %s rate-limited or suspended, skipping demo spend", relayerID)
		return
	}

	var root, tag pool.Bytes32
	root[31] = 0x01
	tag[31] = 0x02

	_, err := p.Spend(context.Background(), pool.SpendParams{
		Root:   root,
		Tag:    tag,
		Amount: 1,
		Now:    time.Now().Unix(),
	})
	if err != nil {
		logger.Info("demo spend rejected as expected: %v", err)
		metrics.RecordRejectedSpend(err.Error())
		if err == pool.ErrProofRejected {
			limiter.RecordInvalidProof(relayerID)
		}
		return
	}
	limiter.RecordValidProof(relayerID)
	logger.Info("demo spend accepted")
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"fadet/internal/modkit"
	"fadet/internal/modkit/module"
	"fadet/internal/modkit/repokit"
	"fadet/internal/platform/config"
	"fadet/internal/platform/logger"
	"fadet/internal/platform/store"

	"fadet/internal/core/operators"
	ingestdom "fadet/internal/services/ingest/domain"
	ingestmod "fadet/internal/services/ingest/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "fadet-ingest",
		PG: store.PGConfig{
			Enabled:        true,
			URL:            pgCfg.MustString("DBURL"),
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:         pgCfg.MayBool("LOG_SQL", true),
			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 6),
			PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 5*time.Second),
		},
		CH: store.CHConfig{
			Enabled: true,
			URL:     chCfg.MustString("DBURL"),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(context.Background(), st)

	var (
		dossier  = flag.String("dossier", "", "dossier id (required)")
		format   = flag.String("format", "", "operator format: ORRE, SRR, TCOI or ZONE")
		kind     = flag.String("kind", "MT20", "requisition kind: MT20, MT24 or HREF")
		name     = flag.String("target-name", "", "subscriber or zone name")
		ident    = flag.String("target-id", "", "MSISDN, IMEI or zone number")
		by       = flag.String("by", "cli", "uploader identity for the files log")
		sites    = flag.String("sites", "", "SRR site directory workbook (required with -format SRR)")
		zoneName = flag.String("zone-name", "", "zone name (ZONE format)")
		zoneNum  = flag.String("zone-num", "", "zone number (ZONE format)")
		zoneCity = flag.String("zone-city", "", "zone city (ZONE format)")
	)
	flag.Parse()

	if *dossier == "" || *format == "" {
		log.Fatal("dossier/format are required")
	}
	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("at least one input file is required")
	}

	var sitesData []byte
	var sitesName string
	if *sites != "" {
		if sitesData, err = os.ReadFile(*sites); err != nil {
			log.Fatalf("read -sites: %v", err)
		}
		sitesName = filepath.Base(*sites)
	}

	in := ingestdom.BatchInput{
		DossierID:        *dossier,
		Format:           operators.Format(*format),
		Kind:             ingestdom.RequisitionKind(*kind),
		TargetName:       *name,
		TargetIdentifier: *ident,
		UploadedBy:       *by,
		Zone: ingestdom.ZoneMeta{
			Name: *zoneName,
			Num:  *zoneNum,
			City: *zoneCity,
		},
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			log.Fatalf("read %s: %v", p, err)
		}
		in.Files = append(in.Files, ingestdom.FileUpload{
			Name:      filepath.Base(p),
			Data:      data,
			SitesName: sitesName,
			SitesData: sitesData,
		})
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	im := ingestmod.New(deps)
	module.Register(im.Name(), im.Ports())

	ctx := logger.WithRequest(context.Background(), "", *dossier)
	ports, ok := module.PortsAs[ingestmod.Ports](im.Name())
	if !ok {
		l.Fatal().Str("module", im.Name()).Msg("module ports not registered")
	}
	uploader := ports.Uploader
	report, err := uploader.UploadBatch(ctx, in)
	if err != nil {
		l.Fatal().Err(err).Msg("ingest failed")
	}

	failed := 0
	for _, fr := range report.Files {
		if fr.Error != "" {
			failed++
			l.Error().Str("file", fr.Filename).Str("error", fr.Error).Msg("rejected")
			continue
		}
		l.Info().Str("file", fr.Filename).Str("table", fr.Table).Int("rows", fr.RowCount).Msg("stored")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

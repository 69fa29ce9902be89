package handlers

import (
	"klage_registrering_go/config"
	"klage_registrering_go/db"
	"klage_registrering_go/services"
	"klage_registrering_go/services/arkiv"
	"klage_registrering_go/services/fagsystem"
	"klage_registrering_go/services/oppgave"
	"klage_registrering_go/services/persondata"
	"klage_registrering_go/services/saksbehandling"
)

var (
	partService        *services.PartService
	mulighetService    *services.MulighetService
	ferdigstillService *services.FerdigstillService
	fagsystemClient    services.FagsystemClient
)

// Init wires the external-system clients and the services the handlers use.
// Must run after db.Initialize.
func Init(cfg *config.Config) {
	arkivClient := arkiv.NewClient(cfg.ArkivBaseURL, cfg.ServiceToken)
	saksbehandlingClient := saksbehandling.NewClient(cfg.SaksbehandlingBaseURL, cfg.ServiceToken)
	fagsystemClient = fagsystem.NewClient(cfg.FagsystemBaseURL, cfg.ServiceToken)
	oppgaveClient := oppgave.NewClient(cfg.OppgaveBaseURL, cfg.ServiceToken)
	persondataClient := persondata.NewClient(cfg.PersondataBaseURL, cfg.ServiceToken)

	partService = services.NewPartService(persondataClient, saksbehandlingClient)
	mulighetService = services.NewMulighetService(db.DB, saksbehandlingClient, fagsystemClient, arkivClient)
	ferdigstillService = services.NewFerdigstillService(
		db.DB,
		arkivClient,
		saksbehandlingClient,
		fagsystemClient,
		oppgaveClient,
		partService,
		mulighetService,
	)
}

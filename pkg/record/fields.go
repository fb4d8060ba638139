package record

// Field names shared by data-source clients and report builders.
const (
	// FieldQuery keeps the name that was submitted to a source.
	FieldQuery = "Nome Entrada"

	FieldFamily          = "family"
	FieldGenus           = "genus"
	FieldSpecies         = "species"
	FieldScientificName  = "scientificname"
	FieldAuthorship      = "scientificnameauthorship"
	FieldSpecificEpithet = "specificepithet"
	FieldInfraEpithet    = "infraspecificepithet"
	FieldTaxonomicStatus = "taxonomicstatus"
	FieldAcceptedName    = "acceptednameusage"
	FieldSynonyms        = "sinonimos"
	FieldModified        = "modified"
	FieldNameString      = "nomeStr"
	FieldLifeForm        = "formaVida"
	FieldSubstrate       = "substrato"
	FieldVegetationType  = "tipoVegetacao"
	FieldOrigin          = "origem"
	FieldChecklistStatus = "status"
	FieldChecklistID     = "id"
	FieldChecklistAccID  = "acceptedid"
)

// Status values that mark an accepted name in taxonomic sources.
const (
	FloraAccepted     = "NOME_ACEITO"
	ChecklistAccepted = "accepted"
)

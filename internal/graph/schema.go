package graph

// SchemaSQL defines the travel knowledge graph schema.
// Node labels live in the type field rather than dynamic table names, so the
// closed models.EntityType enumeration stays the only gate on label text.
const SchemaSQL = `
    DEFINE TABLE IF NOT EXISTS place SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS type ON place TYPE string;
    DEFINE FIELD IF NOT EXISTS name ON place TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON place TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS city ON place TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS region ON place TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS tags ON place TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS created ON place TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS place_type ON place FIELDS type;
    DEFINE INDEX IF NOT EXISTS place_city ON place FIELDS city;

    -- Typed directed edges, single relation table with rel_type field.
    DEFINE TABLE IF NOT EXISTS related TYPE RELATION IN place OUT place SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS rel_type ON related TYPE string;
    DEFINE FIELD IF NOT EXISTS created ON related TYPE datetime DEFAULT time::now();
    -- Unique constraint prevents duplicate edges between the same pair.
    DEFINE FIELD IF NOT EXISTS unique_key ON related VALUE <string>string::concat(<string>in, "|", rel_type, "|", <string>out);
    DEFINE INDEX IF NOT EXISTS unique_related ON related FIELDS unique_key UNIQUE;
`

package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the summary output.
	OutputMode string

	// DatabaseBackend represents the database backend for the build registry.
	DatabaseBackend string

	// DataType represents the PMML dataType of a field.
	DataType string

	// OpType represents the PMML optype of a field.
	OpType string

	// UsageType represents the mining schema role of a field.
	UsageType string

	// Operator represents a PMML SimplePredicate operator.
	Operator string

	// ModelStatus represents the outcome of compiling one grid point.
	ModelStatus string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All registry backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All data types supported.
const (
	DoubleType   DataType = "double"
	FloatType    DataType = "float"
	IntegerType  DataType = "integer"
	StringType   DataType = "string"
	BooleanType  DataType = "boolean"
	DateType     DataType = "date"
	TimeType     DataType = "time"
	DateTimeType DataType = "dateTime"
)

// All optypes supported.
const (
	Continuous  OpType = "continuous"
	Categorical OpType = "categorical"
	Ordinal     OpType = "ordinal"
)

// All usage types supported.
const (
	ActiveUsage          UsageType = "active"
	PredictedUsage       UsageType = "predicted"
	TargetUsage          UsageType = "target"
	SupplementaryUsage   UsageType = "supplementary"
	GroupUsage           UsageType = "group"
	OrderUsage           UsageType = "order"
	FrequencyWeightUsage UsageType = "frequencyWeight"
	AnalysisWeightUsage  UsageType = "analysisWeight"
)

// PMML operators emitted by the predicate compiler.
const (
	LessThan       Operator = "lessThan"
	LessOrEqual    Operator = "lessOrEqual"
	Equal          Operator = "equal"
	GreaterOrEqual Operator = "greaterOrEqual"
	GreaterThan    Operator = "greaterThan"
	IsMissing      Operator = "isMissing"
)

// All model statuses recorded in the registry.
const (
	ModelOK     ModelStatus = "ok"
	ModelFailed ModelStatus = "error"
)

// Fixed document contract values.
const (
	PMMLVersion         = "4.2"
	PMMLNamespace       = "http://www.dmg.org/PMML-4_2"
	FunctionName        = "regression"
	ReasonCodeAlgorithm = "pointsAbove"
	BaselineMethod      = "min"
	InitialScore        = "0"
	DefaultBaseline     = "0"
	RiskScoreField      = "RiskScore"
	ReasonCodePrefix    = "ReasonCode"
	ReasonCodeCount     = 3
	CharacteristicScore = "Score" // suffix of a rendered characteristic name
	CharacteristicRC    = "RC"    // suffix of a rendered reason code group
)

// RuleOperators maps the rule-expression tokens to PMML operators.
var RuleOperators = map[string]Operator{
	"<":  LessThan,
	"<=": LessOrEqual,
	"==": Equal,
	">=": GreaterOrEqual,
	">":  GreaterThan,
}

// OperatorSymbols maps PMML operators back to their rule-expression tokens.
var OperatorSymbols = map[Operator]string{
	LessThan:       "<",
	LessOrEqual:    "<=",
	Equal:          "==",
	GreaterOrEqual: ">=",
	GreaterThan:    ">",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid registry backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidDataTypes lists all valid field data types.
var ValidDataTypes = map[DataType]struct{}{
	DoubleType:   {},
	FloatType:    {},
	IntegerType:  {},
	StringType:   {},
	BooleanType:  {},
	DateType:     {},
	TimeType:     {},
	DateTimeType: {},
}

// ValidOpTypes lists all valid field optypes.
var ValidOpTypes = map[OpType]struct{}{
	Continuous:  {},
	Categorical: {},
	Ordinal:     {},
}

// ValidUsageTypes lists all valid mining schema usage types.
var ValidUsageTypes = map[UsageType]struct{}{
	ActiveUsage:          {},
	PredictedUsage:       {},
	TargetUsage:          {},
	SupplementaryUsage:   {},
	GroupUsage:           {},
	OrderUsage:           {},
	FrequencyWeightUsage: {},
	AnalysisWeightUsage:  {},
}

// AllowsValues reports whether a field with this optype may enumerate values.
func (o OpType) AllowsValues() bool {
	return o == Categorical || o == Ordinal
}

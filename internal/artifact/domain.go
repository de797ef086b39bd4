package artifact

// Domain names one model family served by the API.
type Domain string

const (
	DomainChurn     Domain = "churn"
	DomainForecast  Domain = "forecast"
	DomainKMeans    Domain = "kmeans"
	DomainSentiment Domain = "sentiment"
)

// Artifact file names, relative to the models directory.
const (
	FileChurnSingle     = "churn_model.json"
	FileChurnVariants   = "churn_models_all.json"
	FileForecastPlain   = "linear_regressor_model.json"
	FileForecastBundle  = "forecast_models.json"
	FileKMeansBundle    = "kmeans.json"
	FileSentimentObject = "text_sentiment_model.json"
)

// Shape records which artifact layout produced a binding.
type Shape string

const (
	ShapeSingle      Shape = "single"
	ShapeVariants    Shape = "variants"
	ShapePlain       Shape = "plain"
	ShapeBundle      Shape = "bundle"
	ShapeLexicon     Shape = "lexicon"
	ShapePipeline    Shape = "pipeline"
	ShapeUnsupported Shape = "unsupported"
)

// ChurnVariantPreference is scanned in order before falling back to the
// dictionary's own key order.
var ChurnVariantPreference = []string{
	"RandomForest_SMOTE", "RandomForest_BASE",
	"Logistic_SMOTE", "Logistic_BASE",
	"SVM_SMOTE", "SVM_BASE",
}

// ForecastModelPreference is scanned in order before falling back to the
// bundle's first model.
var ForecastModelPreference = []string{"RandomForestRegressor", "LinearRegression"}

var fileDomains = map[string]Domain{
	FileChurnSingle:     DomainChurn,
	FileChurnVariants:   DomainChurn,
	FileForecastPlain:   DomainForecast,
	FileForecastBundle:  DomainForecast,
	FileKMeansBundle:    DomainKMeans,
	FileSentimentObject: DomainSentiment,
}

// DomainForFile returns the domain that reads the named artifact file.
func DomainForFile(name string) (Domain, bool) {
	d, ok := fileDomains[name]
	return d, ok
}

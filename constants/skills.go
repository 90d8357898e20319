package constants

// SkillVocabulary is the fixed, lowercase skill term list matched against
// resume text. Matching is case-insensitive substring containment; a term
// present anywhere in the document counts once regardless of repeats.
var SkillVocabulary = []string{
	"go",
	"golang",
	"python",
	"java",
	"javascript",
	"typescript",
	"c++",
	"c#",
	"ruby",
	"rust",
	"php",
	"swift",
	"kotlin",
	"scala",
	"sql",
	"html",
	"css",
	"react",
	"angular",
	"vue",
	"node.js",
	"django",
	"flask",
	"spring",
	"docker",
	"kubernetes",
	"terraform",
	"aws",
	"azure",
	"gcp",
	"postgresql",
	"mysql",
	"mongodb",
	"redis",
	"kafka",
	"rabbitmq",
	"elasticsearch",
	"graphql",
	"rest",
	"grpc",
	"microservices",
	"git",
	"ci/cd",
	"linux",
	"machine learning",
	"deep learning",
	"data science",
	"nlp",
	"devops",
	"agile",
	"scrum",
}

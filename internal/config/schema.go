package config

// schemaSource is the closed schema every config file is unified with. The
// starred alternatives are the defaults used when a field is left out.
const schemaSource = `
#Config: {
	configVersion: string
	layout:        *"single" | "multi"
	log: {
		level:  *"info" | "debug" | "warn" | "error"
		format: *"text" | "json"
	}
	extract: {
		processes:        *0 | int & >=0
		exclude:          *[] | [...string]
		ignoreFile:       *"" | string
		filter:           *"" | string
		maxDocumentBytes: *0 | int & >=0
		summary:          *"" | string
		lf:               *false | bool
		failOnError:      *false | bool
	}
	generate: {
		archiveCount: *50 | int & >=0
		xmlCount:     *100 | int & >=1
		processes:    *0 | int & >=0
		seed?:        int & >=0
	}
}
`

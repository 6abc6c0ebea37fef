package models

type QuestionSource string

const (
	SourceMIROficial     QuestionSource = "mir_oficial"
	SourceAIGenerated    QuestionSource = "ai_generated"
	SourceExpertOriginal QuestionSource = "expert_original"
	SourceAdaptada       QuestionSource = "adaptada"
)

var ValidSources = map[QuestionSource]bool{
	SourceMIROficial:     true,
	SourceAIGenerated:    true,
	SourceExpertOriginal: true,
	SourceAdaptada:       true,
}

type QuestionType string

const (
	TypeCasoClinico QuestionType = "caso_clinico"
	TypeDirecta     QuestionType = "directa"
	TypeImagen      QuestionType = "imagen"
)

var ValidQuestionTypes = map[QuestionType]bool{
	TypeCasoClinico: true,
	TypeDirecta:     true,
	TypeImagen:      true,
}

type StemStyle string

const (
	StemMasProbable     StemStyle = "mas_probable"
	StemDeEleccion      StemStyle = "de_eleccion"
	StemFalsoIncorrecto StemStyle = "falso_incorrecto"
	StemExcepto         StemStyle = "excepto"
	StemSiguientePaso   StemStyle = "siguiente_paso"
	StemContraindicado  StemStyle = "contraindicado"
)

var ValidStemStyles = map[StemStyle]bool{
	StemMasProbable:     true,
	StemDeEleccion:      true,
	StemFalsoIncorrecto: true,
	StemExcepto:         true,
	StemSiguientePaso:   true,
	StemContraindicado:  true,
}

type ImageType string

const (
	ImageGenealogico       ImageType = "genealogico"
	ImageOftalmologica     ImageType = "oftalmologica"
	ImageEndoscopiaORL     ImageType = "endoscopia_orl"
	ImageRM                ImageType = "rm"
	ImageTAC               ImageType = "tac"
	ImageRX                ImageType = "rx"
	ImageFotografiaClinica ImageType = "fotografia_clinica"
	ImageECG               ImageType = "ecg"
	ImageAnatomiaPat       ImageType = "anatomia_patologica"
	ImageDermatologica     ImageType = "dermatologica"
	ImageGrafico           ImageType = "grafico"
)

var ValidImageTypes = map[ImageType]bool{
	ImageGenealogico:       true,
	ImageOftalmologica:     true,
	ImageEndoscopiaORL:     true,
	ImageRM:                true,
	ImageTAC:               true,
	ImageRX:                true,
	ImageFotografiaClinica: true,
	ImageECG:               true,
	ImageAnatomiaPat:       true,
	ImageDermatologica:     true,
	ImageGrafico:           true,
}

type ClinicalSetting string

const (
	SettingUrgencias     ClinicalSetting = "urgencias"
	SettingEspecializada ClinicalSetting = "consulta_especializada"
	SettingAP            ClinicalSetting = "consulta_ap"
	SettingHospital      ClinicalSetting = "hospital"
	SettingSinContexto   ClinicalSetting = "sin_contexto"
	SettingDomicilio     ClinicalSetting = "domicilio"
)

var ValidSettings = map[ClinicalSetting]bool{
	SettingUrgencias:     true,
	SettingEspecializada: true,
	SettingAP:            true,
	SettingHospital:      true,
	SettingSinContexto:   true,
	SettingDomicilio:     true,
}

type Population string

const (
	PopAdulto     Population = "adulto"
	PopAnciano    Population = "anciano"
	PopPediatrico Population = "pediatrico"
	PopNeonato    Population = "neonato"
	PopGestante   Population = "gestante"
)

var ValidPopulations = map[Population]bool{
	PopAdulto:     true,
	PopAnciano:    true,
	PopPediatrico: true,
	PopNeonato:    true,
	PopGestante:   true,
}

type ClinicalTask string

const (
	TaskDiagnostico      ClinicalTask = "diagnostico"
	TaskTratamiento      ClinicalTask = "tratamiento"
	TaskFisiopatologia   ClinicalTask = "fisiopatologia"
	TaskManejoInicial    ClinicalTask = "manejo_inicial"
	TaskPrevencion       ClinicalTask = "prevencion"
	TaskEstratificacion  ClinicalTask = "estratificacion_riesgo"
	TaskPruebaDx         ClinicalTask = "prueba_diagnostica"
	TaskDecisionesEticas ClinicalTask = "decisiones_eticas"
	TaskCertificacion    ClinicalTask = "certificacion_legal"
	TaskDxMolecular      ClinicalTask = "diagnostico_molecular"
)

var ValidClinicalTasks = map[ClinicalTask]bool{
	TaskDiagnostico:      true,
	TaskTratamiento:      true,
	TaskFisiopatologia:   true,
	TaskManejoInicial:    true,
	TaskPrevencion:       true,
	TaskEstratificacion:  true,
	TaskPruebaDx:         true,
	TaskDecisionesEticas: true,
	TaskCertificacion:    true,
	TaskDxMolecular:      true,
}

type CognitiveLevel string

const (
	LevelRecuerdo    CognitiveLevel = "recuerdo"
	LevelComprension CognitiveLevel = "comprension"
	LevelAplicacion  CognitiveLevel = "aplicacion"
	LevelAnalisis    CognitiveLevel = "analisis"
)

var ValidCognitiveLevels = map[CognitiveLevel]bool{
	LevelRecuerdo:    true,
	LevelComprension: true,
	LevelAplicacion:  true,
	LevelAnalisis:    true,
}

type ReasoningType string

const (
	ReasoningPattern     ReasoningType = "pattern_recognition"
	ReasoningAlgoritmo   ReasoningType = "algoritmo"
	ReasoningRegla       ReasoningType = "regla_criterio"
	ReasoningIntegracion ReasoningType = "integracion_multidisciplinar"
)

var ValidReasoningTypes = map[ReasoningType]bool{
	ReasoningPattern:     true,
	ReasoningAlgoritmo:   true,
	ReasoningRegla:       true,
	ReasoningIntegracion: true,
}

type MirTipologia string

const (
	TipologiaDxDirecto      MirTipologia = "dx_directo"
	TipologiaTxEleccion     MirTipologia = "tx_eleccion"
	TipologiaConceptoBasico MirTipologia = "concepto_basico"
	TipologiaClasificacion  MirTipologia = "clasificacion"
	TipologiaProtocoloGuia  MirTipologia = "protocolo_guia"
	TipologiaContraindicada MirTipologia = "contraindicacion"
	TipologiaPrevencionMIR  MirTipologia = "prevencion_mir"
	TipologiaUrgencia       MirTipologia = "urgencia"
)

var ValidMirTipologias = map[MirTipologia]bool{
	TipologiaDxDirecto:      true,
	TipologiaTxEleccion:     true,
	TipologiaConceptoBasico: true,
	TipologiaClasificacion:  true,
	TipologiaProtocoloGuia:  true,
	TipologiaContraindicada: true,
	TipologiaPrevencionMIR:  true,
	TipologiaUrgencia:       true,
}

// ── SNOMED terminology ──────────────────────────────────

type SnomedEntry struct {
	Code    string `json:"code"`
	Display string `json:"display"`
	ATC     string `json:"atc,omitempty"`
}

// SnomedCodes groups terminology entries by semantic role.
type SnomedCodes struct {
	ClinicalFocus   []SnomedEntry `json:"clinicalFocus"`
	Context         []SnomedEntry `json:"context"`
	Findings        []SnomedEntry `json:"findings"`
	Procedures      []SnomedEntry `json:"procedures"`
	Pharmaceuticals []SnomedEntry `json:"pharmaceuticals"`
	Anatomy         []SnomedEntry `json:"anatomy"`
}

// Role returns the entries for a named semantic role, or nil for an
// unknown role name.
func (s SnomedCodes) Role(role string) []SnomedEntry {
	switch role {
	case "clinicalFocus":
		return s.ClinicalFocus
	case "context":
		return s.Context
	case "findings":
		return s.Findings
	case "procedures":
		return s.Procedures
	case "pharmaceuticals":
		return s.Pharmaceuticals
	case "anatomy":
		return s.Anatomy
	}
	return nil
}

// SnomedRoles lists the role names in display order.
var SnomedRoles = []string{
	"clinicalFocus", "context", "findings",
	"procedures", "pharmaceuticals", "anatomy",
}

// ── Dissection question ─────────────────────────────────

type DissectionAnswer struct {
	Order              int     `json:"order"`
	Text               string  `json:"text"`
	IsCorrect          bool    `json:"isCorrect"`
	DistractorAnalysis *string `json:"distractorAnalysis"`
}

// DissectionQuestion is the classified, read-only record behind the
// statistical dissection views. It is never mutated by the server.
type DissectionQuestion struct {
	Year               int                `json:"year"`
	Number             int                `json:"number"`
	Source             QuestionSource     `json:"source"`
	Text               string             `json:"text"`
	TextHTML           string             `json:"textHtml"`
	TextSummary        string             `json:"textSummary"`
	Images             []string           `json:"images"`
	Answers            []DissectionAnswer `json:"answers"`
	CorrectAnswerIndex int                `json:"correctAnswerIndex"`
	Explanation        *string            `json:"explanation"`
	Specialty          string             `json:"specialty"`
	Subspecialty       string             `json:"subspecialty"`
	Topic              string             `json:"topic"`
	QuestionType       QuestionType       `json:"questionType"`
	StemStyle          StemStyle          `json:"stemStyle"`
	ImageType          *ImageType         `json:"imageType"`
	Setting            ClinicalSetting    `json:"setting"`
	Population         Population         `json:"population"`
	ClinicalTask       ClinicalTask       `json:"clinicalTask"`
	CognitiveLevel     CognitiveLevel     `json:"cognitiveLevel"`
	ReasoningType      ReasoningType      `json:"reasoningType"`
	MirTipologia       MirTipologia       `json:"mirTipologia"`
	Snomed             SnomedCodes        `json:"snomed"`
	ICD10              []string           `json:"icd10"`
	ATC                []string           `json:"atc"`
	ValidatedBy        *string            `json:"validatedBy"`
	ValidatedAt        *string            `json:"validatedAt"`
	IsActive           bool               `json:"isActive"`
}

// ── Manifest ────────────────────────────────────────────

type DissectionManifestEntry struct {
	Year           int `json:"year"`
	TotalQuestions int `json:"totalQuestions"`
	SpecialtyCount int `json:"specialtyCount"`
	ImageCount     int `json:"imageCount"`
}

type DissectionManifest struct {
	Years []int                     `json:"years"`
	Exams []DissectionManifestEntry `json:"exams"`
}

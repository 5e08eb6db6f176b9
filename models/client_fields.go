package models

// FieldKey names one leaf of a ClientRecord. The value doubles as the HTML form
// input name, so it must stay stable.
type FieldKey string

// Widget is the control used to edit a field
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetDate     Widget = "date"
	WidgetEmail    Widget = "email"
	WidgetTextarea Widget = "textarea"
)

// Section titles, in form order
const (
	SectionClientInfo   = "Client Information"
	SectionAdverseParty = "Adverse Party"
	SectionRelationship = "Relationship Particulars"
	SectionChildren     = "Children & Custody"
	SectionAssets       = "Assets & Liabilities"
	SectionLawyerNotes  = "Lawyer Notes"
)

const (
	FieldHowHeard             FieldKey = "clientInfo.howHeard"
	FieldClientName           FieldKey = "clientInfo.name"
	FieldClientDateOfBirth    FieldKey = "clientInfo.dateOfBirth"
	FieldClientPlaceOfBirth   FieldKey = "clientInfo.placeOfBirth"
	FieldCitizenship          FieldKey = "clientInfo.citizenship"
	FieldClientSurnameAtBirth FieldKey = "clientInfo.surnameAtBirth"
	FieldClientArrivedInBC    FieldKey = "clientInfo.arrivedInBC"
	FieldUSCitizen            FieldKey = "clientInfo.usCitizen"
	FieldClientAddress        FieldKey = "clientInfo.address"
	FieldMailingAddress       FieldKey = "clientInfo.mailingAddress"
	FieldHomePhone            FieldKey = "clientInfo.home"
	FieldWorkPhone            FieldKey = "clientInfo.work"
	FieldMobile               FieldKey = "clientInfo.mobile"
	FieldClientEmail          FieldKey = "clientInfo.email"
	FieldClientOccupation     FieldKey = "clientInfo.occupation"
	FieldClientEmployer       FieldKey = "clientInfo.employer"
	FieldAnnualIncome         FieldKey = "clientInfo.annualIncome"
	FieldClientOtherIncome    FieldKey = "clientInfo.otherIncome"

	FieldAdverseName           FieldKey = "adverseParty.name"
	FieldAdverseSurnameAtBirth FieldKey = "adverseParty.surnameAtBirth"
	FieldAdverseOtherNames     FieldKey = "adverseParty.otherNames"
	FieldAdverseDateOfBirth    FieldKey = "adverseParty.dateOfBirth"
	FieldAdversePlaceOfBirth   FieldKey = "adverseParty.placeOfBirth"
	FieldAdverseAddress        FieldKey = "adverseParty.address"
	FieldAdverseArrivedInBC    FieldKey = "adverseParty.arrivedInBC"
	FieldAdverseOccupation     FieldKey = "adverseParty.occupation"
	FieldAdverseEmployer       FieldKey = "adverseParty.employer"
	FieldAdverseIncome         FieldKey = "adverseParty.income"
	FieldAdverseOtherIncome    FieldKey = "adverseParty.otherIncome"
	FieldAdverseLawyerName     FieldKey = "adverseParty.lawyer.name"
	FieldAdverseLawyerFirm     FieldKey = "adverseParty.lawyer.firm"
	FieldAdverseLawyerAddress  FieldKey = "adverseParty.lawyer.address"
	FieldAdverseLawyerPhone    FieldKey = "adverseParty.lawyer.phone"
	FieldAdverseLawyerFax      FieldKey = "adverseParty.lawyer.fax"
	FieldAdverseLawyerEmail    FieldKey = "adverseParty.lawyer.email"

	FieldCohabitationDate       FieldKey = "relationship.cohabitationDate"
	FieldMarriageDate           FieldKey = "relationship.marriageDate"
	FieldMarriagePlace          FieldKey = "relationship.marriagePlace"
	FieldSeparationDate         FieldKey = "relationship.separationDate"
	FieldHasAgreement           FieldKey = "relationship.hasAgreement"
	FieldDivorced               FieldKey = "relationship.divorced"
	FieldHasMarriageCertificate FieldKey = "relationship.hasMarriageCertificate"

	FieldChildrenDetails FieldKey = "children.details"
	FieldCustodySought   FieldKey = "children.custodySought"
	FieldCustodyTerms    FieldKey = "children.custodyTerms"

	FieldAssetsSummary     FieldKey = "assets.summary"
	FieldRRSP              FieldKey = "assets.rrsp"
	FieldPrivatePensions   FieldKey = "assets.privatePensions"
	FieldInvestments       FieldKey = "assets.investments"
	FieldBusinessInterests FieldKey = "assets.businessInterests"
	FieldAutomobiles       FieldKey = "assets.automobiles"
	FieldDebts             FieldKey = "assets.debts"

	FieldNotes FieldKey = "notes"
)

// FieldSpec binds a field key to its label, widget and typed accessor pair
type FieldSpec struct {
	Key      FieldKey
	Label    string
	Section  string
	Widget   Widget
	Required bool
	// LawyerOnly fields are hidden from the client intake form
	LawyerOnly bool
	Get        func(*ClientRecord) string
	Set        func(*ClientRecord, string)
}

// FormSection groups the fields rendered under one heading
type FormSection struct {
	Title  string
	Fields []FieldSpec
}

var fieldSpecs = []FieldSpec{
	{Key: FieldHowHeard, Label: "How did you hear about our firm", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.HowHeard }, Set: func(r *ClientRecord, v string) { r.ClientInfo.HowHeard = v }},
	{Key: FieldClientName, Label: "Name", Section: SectionClientInfo, Widget: WidgetText, Required: true,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Name }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Name = v }},
	{Key: FieldClientDateOfBirth, Label: "Date of Birth", Section: SectionClientInfo, Widget: WidgetDate,
		Get: func(r *ClientRecord) string { return r.ClientInfo.DateOfBirth }, Set: func(r *ClientRecord, v string) { r.ClientInfo.DateOfBirth = v }},
	{Key: FieldClientPlaceOfBirth, Label: "Place of Birth", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.PlaceOfBirth }, Set: func(r *ClientRecord, v string) { r.ClientInfo.PlaceOfBirth = v }},
	{Key: FieldCitizenship, Label: "Citizenship", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Citizenship }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Citizenship = v }},
	{Key: FieldClientSurnameAtBirth, Label: "Surname at Birth", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.SurnameAtBirth }, Set: func(r *ClientRecord, v string) { r.ClientInfo.SurnameAtBirth = v }},
	{Key: FieldClientArrivedInBC, Label: "Date Arrived in BC", Section: SectionClientInfo, Widget: WidgetDate,
		Get: func(r *ClientRecord) string { return r.ClientInfo.ArrivedInBC }, Set: func(r *ClientRecord, v string) { r.ClientInfo.ArrivedInBC = v }},
	{Key: FieldUSCitizen, Label: "US Citizen (Yes/No)", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.USCitizen }, Set: func(r *ClientRecord, v string) { r.ClientInfo.USCitizen = v }},
	{Key: FieldClientAddress, Label: "Address", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Address }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Address = v }},
	{Key: FieldMailingAddress, Label: "Mailing Address", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.MailingAddress }, Set: func(r *ClientRecord, v string) { r.ClientInfo.MailingAddress = v }},
	{Key: FieldHomePhone, Label: "Home Phone", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Home }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Home = v }},
	{Key: FieldWorkPhone, Label: "Work Phone", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Work }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Work = v }},
	{Key: FieldMobile, Label: "Mobile", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Mobile }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Mobile = v }},
	{Key: FieldClientEmail, Label: "Email", Section: SectionClientInfo, Widget: WidgetEmail, Required: true,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Email }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Email = v }},
	{Key: FieldClientOccupation, Label: "Occupation", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Occupation }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Occupation = v }},
	{Key: FieldClientEmployer, Label: "Employer", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.Employer }, Set: func(r *ClientRecord, v string) { r.ClientInfo.Employer = v }},
	{Key: FieldAnnualIncome, Label: "Annual Income", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.AnnualIncome }, Set: func(r *ClientRecord, v string) { r.ClientInfo.AnnualIncome = v }},
	{Key: FieldClientOtherIncome, Label: "Other Income", Section: SectionClientInfo, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.ClientInfo.OtherIncome }, Set: func(r *ClientRecord, v string) { r.ClientInfo.OtherIncome = v }},

	{Key: FieldAdverseName, Label: "Name", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Name }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Name = v }},
	{Key: FieldAdverseSurnameAtBirth, Label: "Surname at Birth", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.SurnameAtBirth }, Set: func(r *ClientRecord, v string) { r.AdverseParty.SurnameAtBirth = v }},
	{Key: FieldAdverseOtherNames, Label: "Other Names", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.OtherNames }, Set: func(r *ClientRecord, v string) { r.AdverseParty.OtherNames = v }},
	{Key: FieldAdverseDateOfBirth, Label: "Date of Birth", Section: SectionAdverseParty, Widget: WidgetDate,
		Get: func(r *ClientRecord) string { return r.AdverseParty.DateOfBirth }, Set: func(r *ClientRecord, v string) { r.AdverseParty.DateOfBirth = v }},
	{Key: FieldAdversePlaceOfBirth, Label: "Place of Birth", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.PlaceOfBirth }, Set: func(r *ClientRecord, v string) { r.AdverseParty.PlaceOfBirth = v }},
	{Key: FieldAdverseAddress, Label: "Address", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Address }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Address = v }},
	{Key: FieldAdverseArrivedInBC, Label: "Date Arrived in BC", Section: SectionAdverseParty, Widget: WidgetDate,
		Get: func(r *ClientRecord) string { return r.AdverseParty.ArrivedInBC }, Set: func(r *ClientRecord, v string) { r.AdverseParty.ArrivedInBC = v }},
	{Key: FieldAdverseOccupation, Label: "Occupation", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Occupation }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Occupation = v }},
	{Key: FieldAdverseEmployer, Label: "Employer", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Employer }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Employer = v }},
	{Key: FieldAdverseIncome, Label: "Income", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Income }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Income = v }},
	{Key: FieldAdverseOtherIncome, Label: "Other Income", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.OtherIncome }, Set: func(r *ClientRecord, v string) { r.AdverseParty.OtherIncome = v }},
	{Key: FieldAdverseLawyerName, Label: "Lawyer Name", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Lawyer.Name }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Lawyer.Name = v }},
	{Key: FieldAdverseLawyerFirm, Label: "Lawyer Firm", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Lawyer.Firm }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Lawyer.Firm = v }},
	{Key: FieldAdverseLawyerAddress, Label: "Lawyer Address", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Lawyer.Address }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Lawyer.Address = v }},
	{Key: FieldAdverseLawyerPhone, Label: "Lawyer Phone", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Lawyer.Phone }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Lawyer.Phone = v }},
	{Key: FieldAdverseLawyerFax, Label: "Lawyer Fax", Section: SectionAdverseParty, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Lawyer.Fax }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Lawyer.Fax = v }},
	{Key: FieldAdverseLawyerEmail, Label: "Lawyer Email", Section: SectionAdverseParty, Widget: WidgetEmail,
		Get: func(r *ClientRecord) string { return r.AdverseParty.Lawyer.Email }, Set: func(r *ClientRecord, v string) { r.AdverseParty.Lawyer.Email = v }},

	{Key: FieldCohabitationDate, Label: "Date of Cohabitation", Section: SectionRelationship, Widget: WidgetDate,
		Get: func(r *ClientRecord) string { return r.Relationship.CohabitationDate }, Set: func(r *ClientRecord, v string) { r.Relationship.CohabitationDate = v }},
	{Key: FieldMarriageDate, Label: "Marriage Date", Section: SectionRelationship, Widget: WidgetDate,
		Get: func(r *ClientRecord) string { return r.Relationship.MarriageDate }, Set: func(r *ClientRecord, v string) { r.Relationship.MarriageDate = v }},
	{Key: FieldMarriagePlace, Label: "Marriage Place", Section: SectionRelationship, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Relationship.MarriagePlace }, Set: func(r *ClientRecord, v string) { r.Relationship.MarriagePlace = v }},
	{Key: FieldSeparationDate, Label: "Separation Date", Section: SectionRelationship, Widget: WidgetDate,
		Get: func(r *ClientRecord) string { return r.Relationship.SeparationDate }, Set: func(r *ClientRecord, v string) { r.Relationship.SeparationDate = v }},
	{Key: FieldHasAgreement, Label: "Has Agreement (Yes/No)", Section: SectionRelationship, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Relationship.HasAgreement }, Set: func(r *ClientRecord, v string) { r.Relationship.HasAgreement = v }},
	{Key: FieldDivorced, Label: "Divorced (Yes/No)", Section: SectionRelationship, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Relationship.Divorced }, Set: func(r *ClientRecord, v string) { r.Relationship.Divorced = v }},
	{Key: FieldHasMarriageCertificate, Label: "Marriage Certificate Status", Section: SectionRelationship, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Relationship.HasMarriageCertificate }, Set: func(r *ClientRecord, v string) { r.Relationship.HasMarriageCertificate = v }},

	{Key: FieldChildrenDetails, Label: "Children (Name, DOB, Lives With)", Section: SectionChildren, Widget: WidgetTextarea,
		Get: func(r *ClientRecord) string { return r.Children.Details }, Set: func(r *ClientRecord, v string) { r.Children.Details = v }},
	{Key: FieldCustodySought, Label: "Custody Sought", Section: SectionChildren, Widget: WidgetTextarea,
		Get: func(r *ClientRecord) string { return r.Children.CustodySought }, Set: func(r *ClientRecord, v string) { r.Children.CustodySought = v }},
	{Key: FieldCustodyTerms, Label: "Custody Terms", Section: SectionChildren, Widget: WidgetTextarea,
		Get: func(r *ClientRecord) string { return r.Children.CustodyTerms }, Set: func(r *ClientRecord, v string) { r.Children.CustodyTerms = v }},

	{Key: FieldAssetsSummary, Label: "Assets (Real Estate, RRSPs, Pensions, Investments)", Section: SectionAssets, Widget: WidgetTextarea,
		Get: func(r *ClientRecord) string { return r.Assets.Summary }, Set: func(r *ClientRecord, v string) { r.Assets.Summary = v }},
	{Key: FieldRRSP, Label: "RRSP", Section: SectionAssets, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Assets.RRSP }, Set: func(r *ClientRecord, v string) { r.Assets.RRSP = v }},
	{Key: FieldPrivatePensions, Label: "Private Pensions", Section: SectionAssets, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Assets.PrivatePensions }, Set: func(r *ClientRecord, v string) { r.Assets.PrivatePensions = v }},
	{Key: FieldInvestments, Label: "Investments", Section: SectionAssets, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Assets.Investments }, Set: func(r *ClientRecord, v string) { r.Assets.Investments = v }},
	{Key: FieldBusinessInterests, Label: "Business Interests", Section: SectionAssets, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Assets.BusinessInterests }, Set: func(r *ClientRecord, v string) { r.Assets.BusinessInterests = v }},
	{Key: FieldAutomobiles, Label: "Automobiles", Section: SectionAssets, Widget: WidgetText,
		Get: func(r *ClientRecord) string { return r.Assets.Automobiles }, Set: func(r *ClientRecord, v string) { r.Assets.Automobiles = v }},
	{Key: FieldDebts, Label: "Debts", Section: SectionAssets, Widget: WidgetTextarea,
		Get: func(r *ClientRecord) string { return r.Assets.Debts }, Set: func(r *ClientRecord, v string) { r.Assets.Debts = v }},

	{Key: FieldNotes, Label: "Lawyer Notes", Section: SectionLawyerNotes, Widget: WidgetTextarea, LawyerOnly: true,
		Get: func(r *ClientRecord) string { return r.Notes }, Set: func(r *ClientRecord, v string) { r.Notes = v }},
}

var sectionOrder = []string{
	SectionClientInfo,
	SectionAdverseParty,
	SectionRelationship,
	SectionChildren,
	SectionAssets,
	SectionLawyerNotes,
}

var fieldIndex = func() map[FieldKey]FieldSpec {
	idx := make(map[FieldKey]FieldSpec, len(fieldSpecs))
	for _, f := range fieldSpecs {
		idx[f.Key] = f
	}
	return idx
}()

// Fields returns every field spec in form order
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// LookupField finds the spec for a key
func LookupField(key FieldKey) (FieldSpec, bool) {
	f, ok := fieldIndex[key]
	return f, ok
}

// Sections groups the fields under their headings. Lawyer-only sections are
// included only when includeLawyerOnly is set.
func Sections(includeLawyerOnly bool) []FormSection {
	var sections []FormSection
	for _, title := range sectionOrder {
		section := FormSection{Title: title}
		for _, f := range fieldSpecs {
			if f.Section != title || (f.LawyerOnly && !includeLawyerOnly) {
				continue
			}
			section.Fields = append(section.Fields, f)
		}
		if len(section.Fields) > 0 {
			sections = append(sections, section)
		}
	}
	return sections
}

// RequiredFields lists the fields that must be non-empty on submission
func RequiredFields() []FieldSpec {
	var out []FieldSpec
	for _, f := range fieldSpecs {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

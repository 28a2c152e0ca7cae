// ABOUTME: Catalog of well-known metadata properties
// ABOUTME: Dublin Core terms, image dimensions and composite creation dates

// Package props populates the metadata property registry with the
// well-known definitions shared by document extractors. Importing the
// package is enough; definitions register themselves.
package props

import "github.com/nainya/metastore/pkg/metadata"

// Namespaces of the well-known vocabularies.
const (
	NamespaceDublinCore = "http://purl.org/dc/elements/1.1/"
	NamespaceDCTerms    = "http://purl.org/dc/terms/"
	NamespaceImage      = "http://ns.adobe.com/tiff/1.0/"
)

func dc(local string) metadata.QName {
	return metadata.NewQName(NamespaceDublinCore, "dc", local)
}

func dcterms(local string) metadata.QName {
	return metadata.NewQName(NamespaceDCTerms, "dcterms", local)
}

func tiff(local string) metadata.QName {
	return metadata.NewQName(NamespaceImage, "tiff", local)
}

// Dublin Core element set.
var (
	Title       = metadata.NewTextProperty(dc("title"))
	Creator     = metadata.NewTextBagProperty(dc("creator"))
	Subject     = metadata.NewTextBagProperty(dc("subject"))
	Description = metadata.NewTextProperty(dc("description"))
	Publisher   = metadata.NewTextProperty(dc("publisher"))
	Contributor = metadata.NewTextBagProperty(dc("contributor"))
	Date        = metadata.NewDateProperty(dc("date"))
	Type        = metadata.NewTextProperty(dc("type"))
	Format      = metadata.NewTextProperty(dc("format"))
	Identifier  = metadata.NewTextProperty(dc("identifier"))
	Language    = metadata.NewTextProperty(dc("language"))
	Rights      = metadata.NewTextProperty(dc("rights"))
	Source      = metadata.NewTextProperty(dc("source"))
)

// Image dimension and resolution properties.
var (
	ImageWidth  = metadata.NewIntegerProperty(tiff("ImageWidth"))
	ImageLength = metadata.NewIntegerProperty(tiff("ImageLength"))
	XResolution = metadata.NewRationalProperty(tiff("XResolution"))
	YResolution = metadata.NewRationalProperty(tiff("YResolution"))
	Orientation = metadata.NewClosedChoiceProperty(tiff("Orientation"),
		"1", "2", "3", "4", "5", "6", "7", "8")
	DateTime = metadata.NewDateProperty(tiff("DateTime"))
)

// Lifecycle dates. Created and Modified are composites: writing one keeps
// the vocabulary-specific slots in sync with the primary dcterms slot.
var (
	dctermsCreated  = metadata.NewDateProperty(dcterms("created"))
	dctermsModified = metadata.NewDateProperty(dcterms("modified"))

	Created  = metadata.NewCompositeProperty(dctermsCreated, Date)
	Modified = metadata.NewCompositeProperty(dctermsModified, DateTime)
)

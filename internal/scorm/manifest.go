// Package scorm implements the package build pipeline: manifest, stylesheet,
// navigation script and page generation, archive assembly, and the structural
// validation of the finished archive.
package scorm

import (
	"fmt"
	"strings"

	"github.com/scormforge/scormforge/consts"
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/pkg/errors"
)

// Version is a supported SCORM schema version
type Version string

// Supported versions
const (
	V12    Version = "1.2"
	V2004  Version = "2004"
	V20043 Version = "2004.3"
	V20044 Version = "2004.4"
)

// ParseVersion validates a version string
func ParseVersion(s string) (Version, error) {
	switch Version(s) {
	case V12, V2004, V20043, V20044:
		return Version(s), nil
	default:
		return "", errors.ErrUnsupportedVersion(s)
	}
}

// schemaVersion maps the version to the manifest schemaversion text
func (v Version) schemaVersion() string {
	switch v {
	case V12:
		return "1.2"
	case V20044:
		return "2004 4th Edition"
	default:
		return "2004 3rd Edition"
	}
}

// ManifestOptions parameterizes manifest generation. Pages lists the
// archive-relative page paths in package order; the 1.2 manifest declares
// every generated file under its resource element.
type ManifestOptions struct {
	Course     *model.CourseRequest
	Version    Version
	Identifier string
	Pages      []string
}

// GenerateManifest builds imsmanifest.xml for the requested version. The two
// schema families carry different namespace sets, and the pass mark surfaces
// as adlcp:masteryscore (1.2) or an imsss primary objective (2004.x). All
// user-supplied text is escaped before insertion.
func GenerateManifest(opts *ManifestOptions) (string, error) {
	if _, err := ParseVersion(string(opts.Version)); err != nil {
		return "", err
	}

	id := escapeXML(opts.Identifier)
	title := escapeXML(opts.Course.Title)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	b.WriteString(`<manifest identifier="` + id + `" version="1.0"` + "\n")
	if opts.Version == V12 {
		b.WriteString(`          xmlns="http://www.imsproject.org/xsd/imscp_rootv1p1p2"` + "\n")
		b.WriteString(`          xmlns:adlcp="http://www.adlnet.org/xsd/adlcp_rootv1p2"` + "\n")
		b.WriteString(`          xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"` + "\n")
		b.WriteString(`          xsi:schemaLocation="http://www.imsproject.org/xsd/imscp_rootv1p1p2 imscp_rootv1p1p2.xsd http://www.adlnet.org/xsd/adlcp_rootv1p2 adlcp_rootv1p2.xsd">` + "\n")
	} else {
		b.WriteString(`          xmlns="http://www.imsglobal.org/xsd/imscp_v1p1"` + "\n")
		b.WriteString(`          xmlns:adlcp="http://www.adlnet.org/xsd/adlcp_v1p3"` + "\n")
		b.WriteString(`          xmlns:adlseq="http://www.adlnet.org/xsd/adlseq_v1p3"` + "\n")
		b.WriteString(`          xmlns:adlnav="http://www.adlnet.org/xsd/adlnav_v1p3"` + "\n")
		b.WriteString(`          xmlns:imsss="http://www.imsglobal.org/xsd/imsss">` + "\n")
	}

	b.WriteString("    <metadata>\n")
	b.WriteString("        <schema>ADL SCORM</schema>\n")
	b.WriteString("        <schemaversion>" + opts.Version.schemaVersion() + "</schemaversion>\n")
	b.WriteString("    </metadata>\n")

	orgID := id + "_org"
	b.WriteString(`    <organizations default="` + orgID + `">` + "\n")
	b.WriteString(`        <organization identifier="` + orgID + `">` + "\n")
	b.WriteString("            <title>" + title + "</title>\n")
	b.WriteString(`            <item identifier="item_1" identifierref="resource_1">` + "\n")
	b.WriteString("                <title>" + title + "</title>\n")
	writeMasteryScore(&b, opts.Version, opts.Course.PassMark)
	b.WriteString("            </item>\n")
	b.WriteString("        </organization>\n")
	b.WriteString("    </organizations>\n")

	b.WriteString("    <resources>\n")
	scormTypeAttr := `adlcp:scormType`
	if opts.Version == V12 {
		// The 1.2 schema spells the attribute lowercase
		scormTypeAttr = `adlcp:scormtype`
	}
	b.WriteString(`        <resource identifier="resource_1" type="webcontent" href="` + consts.IndexPath + `" ` + scormTypeAttr + `="sco">` + "\n")
	b.WriteString(`            <file href="` + consts.IndexPath + `"/>` + "\n")
	if opts.Version == V12 {
		b.WriteString(`            <file href="` + consts.StylesPath + `"/>` + "\n")
		b.WriteString(`            <file href="` + consts.NavigationPath + `"/>` + "\n")
		for _, page := range opts.Pages {
			b.WriteString(`            <file href="` + escapeXML(page) + `"/>` + "\n")
		}
	}
	b.WriteString("        </resource>\n")
	b.WriteString("    </resources>\n")
	b.WriteString("</manifest>\n")

	return b.String(), nil
}

// writeMasteryScore emits the pass mark in the version's own vocabulary
func writeMasteryScore(b *strings.Builder, v Version, passMark int) {
	if v == V12 {
		fmt.Fprintf(b, "                <adlcp:masteryscore>%d</adlcp:masteryscore>\n", passMark)
		return
	}
	b.WriteString("                <imsss:sequencing>\n")
	b.WriteString("                    <imsss:objectives>\n")
	b.WriteString(`                        <imsss:primaryObjective satisfiedByMeasure="true">` + "\n")
	fmt.Fprintf(b, "                            <imsss:minNormalizedMeasure>%.2f</imsss:minNormalizedMeasure>\n", float64(passMark)/100)
	b.WriteString("                        </imsss:primaryObjective>\n")
	b.WriteString("                    </imsss:objectives>\n")
	b.WriteString("                </imsss:sequencing>\n")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML escapes text for use in element content and attribute values
func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}

package markup

import "github.com/opdss/report/archive"

// docx包内各部件的路径
const (
	ContentTypesKey  = "[Content_Types].xml"
	PackageRelsKey   = "_rels/.rels"
	DocumentRelsKey  = "word/_rels/document.xml.rels"
	DocumentFileKey  = "word/document.xml"
	WordMimeType     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	documentMainType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
)

// ContentTypesXML 内容类型描述
const ContentTypesXML = XMLHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="` + documentMainType + `"/>` +
	`</Types>`

// PackageRelsXML 包级关系，指向主文档
const PackageRelsXML = XMLHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relsNamespace + `/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// DocumentRelsXML 主文档的关系，没有样式/图片等部件所以为空
const DocumentRelsXML = XMLHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

// WordPackage 最小可用的docx包：3个固定部件加主文档，顺序固定
func WordPackage(doc Document) []archive.Entry {
	return []archive.Entry{
		{Name: ContentTypesKey, Data: []byte(ContentTypesXML)},
		{Name: PackageRelsKey, Data: []byte(PackageRelsXML)},
		{Name: DocumentRelsKey, Data: []byte(DocumentRelsXML)},
		{Name: DocumentFileKey, Data: []byte(WordDocument(doc))},
	}
}

// Docx 生成docx文件字节
func Docx(doc Document) []byte {
	return archive.Build(WordPackage(doc))
}
